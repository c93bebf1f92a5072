package handlers

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"

	"github.com/printfolio/printfolio/internal/catalog"
	"github.com/printfolio/printfolio/internal/storage"
	"github.com/printfolio/printfolio/internal/utils"
)

type DownloadHandler struct {
	store  storage.ObjectStore
	bucket string
	logger *slog.Logger
}

func NewDownloadHandler(store storage.ObjectStore, bucket string, logger *slog.Logger) *DownloadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadHandler{store: store, bucket: bucket, logger: logger}
}

// DownloadZip streams every image under a directory as a ZIP archive.
// Archive entries are flattened to base filenames for the production
// workflow; name collisions get a numeric suffix and are collected.
func (h *DownloadHandler) DownloadZip(c echo.Context) error {
	dir := c.QueryParam("dir")
	prefix := catalog.PrefixFor(dir)

	objects, err := h.store.ListObjects(c.Request().Context(), h.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to list objects: "+err.Error())
	}

	var files []minio.ObjectInfo
	for _, obj := range objects {
		if path.Base(obj.Key) == catalog.FolderMarker {
			continue
		}
		files = append(files, obj)
	}
	if len(files) == 0 {
		return errorJSON(c, http.StatusNotFound, "no files to download")
	}

	zipName := "catalog.zip"
	if dir != "" {
		zipName = path.Base(strings.Trim(dir, "/")) + ".zip"
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", zipName))
	c.Response().WriteHeader(http.StatusOK)

	zipWriter := zip.NewWriter(c.Response().Writer)
	defer func() { _ = zipWriter.Close() }()

	names := newArchiveNames()
	var total int64
	for _, obj := range files {
		reader, size, err := h.store.GetObjectReader(c.Request().Context(), h.bucket, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			h.logger.Warn("skipping object in zip", "key", obj.Key, "error", err)
			continue
		}

		writer, err := zipWriter.Create(names.claim(path.Base(obj.Key)))
		if err != nil {
			_ = reader.Close()
			continue
		}
		if _, err := io.Copy(writer, reader); err != nil {
			_ = reader.Close()
			continue
		}
		_ = reader.Close()
		total += size
	}

	if len(names.collisions) > 0 {
		h.logger.Warn("zip filename collisions", "dir", dir, "names", names.collisions)
	}
	h.logger.Info("zip streamed", "dir", dir, "files", len(files), "size", utils.FormatFileSize(total))
	return nil
}

// archiveNames deduplicates flattened entry names within one archive
type archiveNames struct {
	seen       map[string]int
	collisions []string
}

func newArchiveNames() *archiveNames {
	return &archiveNames{seen: make(map[string]int)}
}

// claim returns name, or a suffixed variant when the name was already used
func (a *archiveNames) claim(name string) string {
	n := a.seen[name]
	a.seen[name] = n + 1
	if n == 0 {
		return name
	}
	a.collisions = append(a.collisions, name)
	ext := path.Ext(name)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n+1, ext)
}
