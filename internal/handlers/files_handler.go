package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/printfolio/printfolio/internal/catalog"
)

type FilesHandler struct {
	catalog *catalog.Service
}

func NewFilesHandler(svc *catalog.Service) *FilesHandler {
	return &FilesHandler{catalog: svc}
}

// ListFiles returns the categorized listing for one directory
func (h *FilesHandler) ListFiles(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	all, _ := strconv.ParseBool(c.QueryParam("all"))

	listing, err := h.catalog.List(c.Request().Context(), catalog.ListQuery{
		Dir:    c.QueryParam("dir"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
		All:    all,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

// Mutate dispatches the form-encoded mutation actions on the file tree
func (h *FilesHandler) Mutate(c echo.Context) error {
	ctx := c.Request().Context()
	action := c.FormValue("action")
	dir := c.FormValue("dir")

	switch action {
	case "createFolder":
		if err := h.catalog.CreateFolder(ctx, dir, c.FormValue("folderName")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, JSONMessage{Message: "folder created"})

	case "upload":
		file, err := c.FormFile("file")
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "no file uploaded")
		}
		src, err := file.Open()
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "cannot read upload: "+err.Error())
		}
		defer func() { _ = src.Close() }()

		if err := h.catalog.Upload(ctx, dir, file.Filename, src); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, JSONMessage{Message: "file uploaded"})

	case "renameFolder":
		if err := h.catalog.RenameFolder(ctx, dir, c.FormValue("oldName"), c.FormValue("newName")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, JSONMessage{Message: "folder renamed"})

	default:
		return errorJSON(c, http.StatusBadRequest, "unknown action "+strconv.Quote(action))
	}
}

// DeleteFiles removes a single object or a whole folder prefix
func (h *FilesHandler) DeleteFiles(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.QueryParam("dir"), c.QueryParam("path")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, JSONMessage{Message: "deleted"})
}
