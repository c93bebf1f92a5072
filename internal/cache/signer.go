package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// SignedURLValidity is the lifetime requested for presigned URLs
	SignedURLValidity = 24 * time.Hour
	// signedURLCacheFor is deliberately shorter than the URL's validity so a
	// cached URL is always regenerated before it stops working
	signedURLCacheFor = 23 * time.Hour
)

// Presigner generates time-limited read URLs for private objects.
// storage.ObjectStore satisfies it.
type Presigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// Link is a resolved display URL for one object. Fallback marks URLs built
// from the public base after a signing failure rather than signed by the
// storage backend.
type Link struct {
	URL      string
	Fallback bool
}

type signedEntry struct {
	url       string
	expiresAt time.Time
}

// URLSigner memoizes presigned URLs per (bucket, key) so one listing does not
// re-sign the same object on every request within the validity window.
// Signing failures degrade to a public URL instead of failing the listing.
type URLSigner struct {
	presigner     Presigner
	bucket        string
	endpoint      string
	useSSL        bool
	publicBaseURL string

	mu      sync.Mutex
	entries map[string]signedEntry
	now     func() time.Time
}

// NewURLSigner builds a signer for one bucket. publicBaseURL may be empty, in
// which case fallback URLs are derived from the endpoint and bucket name.
func NewURLSigner(presigner Presigner, bucket, endpoint string, useSSL bool, publicBaseURL string) *URLSigner {
	return &URLSigner{
		presigner:     presigner,
		bucket:        bucket,
		endpoint:      endpoint,
		useSSL:        useSSL,
		publicBaseURL: publicBaseURL,
		entries:       make(map[string]signedEntry),
		now:           time.Now,
	}
}

// SetClock replaces the signer's time source
func (s *URLSigner) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SignedURL returns a display URL for objectKey, from cache when a valid
// entry exists. On a signing error the returned link carries a best-effort
// public URL and Fallback set.
func (s *URLSigner) SignedURL(ctx context.Context, objectKey string) Link {
	cacheKey := s.bucket + "/" + objectKey

	s.mu.Lock()
	entry, ok := s.entries[cacheKey]
	now := s.now()
	s.mu.Unlock()
	if ok && now.Before(entry.expiresAt) {
		return Link{URL: entry.url}
	}

	signed, err := s.presigner.PresignedGetObject(ctx, s.bucket, objectKey, SignedURLValidity, nil)
	if err != nil {
		return Link{URL: s.publicURL(objectKey), Fallback: true}
	}

	s.mu.Lock()
	s.entries[cacheKey] = signedEntry{
		url:       signed.String(),
		expiresAt: s.now().Add(signedURLCacheFor),
	}
	s.mu.Unlock()

	return Link{URL: signed.String()}
}

// Len reports the number of cached URLs
func (s *URLSigner) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *URLSigner) publicURL(objectKey string) string {
	escaped := (&url.URL{Path: objectKey}).EscapedPath()
	if s.publicBaseURL != "" {
		return strings.TrimSuffix(s.publicBaseURL, "/") + "/" + escaped
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, escaped)
}
