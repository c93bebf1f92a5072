// Package catalog turns the flat object key space under the catalog prefix
// into a browsable category view and applies mutations to it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"

	"github.com/printfolio/printfolio/internal/cache"
	"github.com/printfolio/printfolio/internal/models"
	"github.com/printfolio/printfolio/internal/storage"
)

const (
	// BasePrefix is where the browsable catalog lives inside the bucket
	BasePrefix = "public/files/"
	// FolderMarker is the zero-byte object basename that keeps an otherwise
	// empty directory visible in listings
	FolderMarker = ".folder"

	// DefaultPageSize is the default number of categories per page
	DefaultPageSize = 50
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Service reconstructs the virtual folder hierarchy from object keys, merges
// in display URLs and serves paginated, searchable listings out of the
// listing cache.
type Service struct {
	store    storage.ObjectStore
	bucket   string
	listings *cache.ListingCache
	signer   *cache.URLSigner
	logger   *slog.Logger
}

func NewService(store storage.ObjectStore, bucket string, listings *cache.ListingCache, signer *cache.URLSigner, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		bucket:   bucket,
		listings: listings,
		signer:   signer,
		logger:   logger,
	}
}

// ListQuery are the parameters of one listing request
type ListQuery struct {
	Dir    string
	Search string
	Page   int
	Limit  int
	All    bool
}

// List returns the categorized view of the queried directory, from cache
// when a fresh entry exists.
func (s *Service) List(ctx context.Context, q ListQuery) (*models.Listing, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}

	prefix := s.prefixFor(q.Dir)
	key := cache.Key(prefix, q.Dir, q.Search, q.Page, q.Limit, q.All)
	if cached, ok := s.listings.Get(key); ok {
		return cached.(*models.Listing), nil
	}

	objects, err := s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list objects under %q: %w", prefix, err)
	}

	var categoryOrder []string
	var currentKeys []string
	categoryKeys := make(map[string][]string)
	addCategory := func(name string) {
		if _, seen := categoryKeys[name]; !seen {
			categoryKeys[name] = nil
			categoryOrder = append(categoryOrder, name)
		}
	}

	for _, obj := range objects {
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" {
			continue
		}
		segments := strings.Split(rel, "/")
		base := segments[len(segments)-1]

		if base == FolderMarker {
			// Marker one level down names a category; deeper markers are
			// invisible at this directory, like everything else nested
			// further.
			if len(segments) == 2 {
				addCategory(segments[0])
			}
			continue
		}
		if !imageExtensions[strings.ToLower(path.Ext(base))] {
			continue
		}
		switch len(segments) {
		case 1:
			currentKeys = append(currentKeys, obj.Key)
		case 2:
			addCategory(segments[0])
			categoryKeys[segments[0]] = append(categoryKeys[segments[0]], obj.Key)
		}
	}

	links := s.resolveLinks(ctx, prefix, currentKeys, categoryOrder, categoryKeys)

	categories := make([]models.Category, 0, len(categoryOrder))
	for i, name := range categoryOrder {
		images := make([]models.Image, 0, len(categoryKeys[name]))
		for _, objKey := range categoryKeys[name] {
			images = append(images, imageFor(objKey, name, links[objKey]))
		}
		categories = append(categories, models.Category{
			ID:     i + 1,
			Name:   name,
			Slug:   Slugify(name),
			Images: images,
		})
	}

	if q.Search != "" {
		needle := Fold(q.Search)
		filtered := categories[:0]
		for _, cat := range categories {
			if strings.Contains(Fold(cat.Name), needle) {
				filtered = append(filtered, cat)
			}
		}
		categories = filtered
	}

	total := len(categories)
	pagination := models.Pagination{Total: total, Page: 1, Limit: total, TotalPages: 1}
	if !q.All {
		totalPages := (total + q.Limit - 1) / q.Limit
		start := (q.Page - 1) * q.Limit
		end := start + q.Limit
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		categories = categories[start:end]
		pagination = models.Pagination{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: totalPages}
	}

	currentImages := make([]models.Image, 0, len(currentKeys))
	for _, objKey := range currentKeys {
		currentImages = append(currentImages, imageFor(objKey, "", links[objKey]))
	}

	listing := &models.Listing{
		Categories: categories,
		Images:     currentImages,
		Pagination: pagination,
	}
	s.listings.Put(key, listing)
	return listing, nil
}

// resolveLinks signs every classified image concurrently and waits for the
// full set, so one response never mixes URLs from different resolution
// rounds and latency is bounded by the slowest single signing call.
func (s *Service) resolveLinks(ctx context.Context, prefix string, currentKeys, categoryOrder []string, categoryKeys map[string][]string) map[string]cache.Link {
	var all []string
	all = append(all, currentKeys...)
	for _, name := range categoryOrder {
		all = append(all, categoryKeys[name]...)
	}

	resolved := make([]cache.Link, len(all))
	var wg sync.WaitGroup
	for i, objKey := range all {
		wg.Add(1)
		go func(i int, objKey string) {
			defer wg.Done()
			resolved[i] = s.signer.SignedURL(ctx, objKey)
		}(i, objKey)
	}
	wg.Wait()

	links := make(map[string]cache.Link, len(all))
	fallbacks := 0
	for i, objKey := range all {
		links[objKey] = resolved[i]
		if resolved[i].Fallback {
			fallbacks++
		}
	}
	if fallbacks > 0 {
		s.logger.Warn("signing degraded to public URLs", "prefix", prefix, "count", fallbacks)
	}
	return links
}

func imageFor(objKey, category string, link cache.Link) models.Image {
	name := path.Base(objKey)
	return models.Image{
		Name:     name,
		Code:     strings.TrimSuffix(name, path.Ext(name)),
		URL:      link.URL,
		Category: category,
	}
}

// PrefixFor computes the storage prefix for a virtual directory
func PrefixFor(dir string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return BasePrefix
	}
	return BasePrefix + dir + "/"
}

func (s *Service) prefixFor(dir string) string {
	return PrefixFor(dir)
}

func (s *Service) invalidate(dir string) {
	s.listings.Invalidate(s.prefixFor(dir))
}
