// Package models contains data structures shared across handlers
package models

// Image describes one catalog image with its display URL
type Image struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Category is a virtual grouping of images one path segment below the
// queried directory. It is derived from object keys, never persisted.
type Category struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Images []Image `json:"images"`
}

// Pagination describes the page window applied to the category list
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Listing is the full response for one catalog query. Images holds the files
// directly inside the queried directory; pagination applies to Categories
// only.
type Listing struct {
	Categories []Category `json:"categories"`
	Images     []Image    `json:"images"`
	Pagination Pagination `json:"pagination"`
}
