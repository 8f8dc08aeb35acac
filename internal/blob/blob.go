// Package blob holds uploaded file bytes in memory behind object URLs, the
// way the original app kept uploads as browser object URLs. Blobs are never
// persisted; a URL is valid until revoked or the process exits.
package blob

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const URLPrefix = "blob:"

var (
	ErrTooLarge    = errors.New("file too large")
	ErrBadType     = errors.New("file type not allowed")
	ErrNotFound    = errors.New("no such blob")
	ErrEmptyUpload = errors.New("empty upload")
)

// DefaultAllowedTypes mirrors the upload widget's extension allow-list.
var DefaultAllowedTypes = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

const DefaultMaxSize = 5 << 20 // 5 MiB

type entry struct {
	name        string
	contentType string
	data        []byte
}

// Registry maps object URLs to blob contents. Validation happens here, before
// an attachment ever reaches the appointment collection.
type Registry struct {
	mu      sync.RWMutex
	blobs   map[string]entry
	allowed map[string]bool
	maxSize int64
}

func NewRegistry(allowedTypes []string, maxSize int64) *Registry {
	if len(allowedTypes) == 0 {
		allowedTypes = DefaultAllowedTypes
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	allowed := make(map[string]bool, len(allowedTypes))
	for _, ext := range allowedTypes {
		allowed[strings.ToLower(ext)] = true
	}
	return &Registry{
		blobs:   make(map[string]entry),
		allowed: allowed,
		maxSize: maxSize,
	}
}

// Create validates the upload and registers it, returning its object URL.
func (r *Registry) Create(name, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > r.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, r.maxSize)
	}
	ext := strings.ToLower(path.Ext(name))
	if !r.allowed[ext] {
		return "", fmt.Errorf("%w: %s", ErrBadType, name)
	}

	url := URLPrefix + uuid.New().String()
	r.mu.Lock()
	r.blobs[url] = entry{name: name, contentType: contentType, data: data}
	r.mu.Unlock()
	return url, nil
}

// Open returns the blob behind the URL.
func (r *Registry) Open(url string) (name, contentType string, data []byte, err error) {
	r.mu.RLock()
	e, ok := r.blobs[url]
	r.mu.RUnlock()
	if !ok {
		return "", "", nil, ErrNotFound
	}
	return e.name, e.contentType, e.data, nil
}

// Revoke releases the blob behind the URL. Revoking an unknown URL is a no-op;
// callers release on teardown without tracking what is still live.
func (r *Registry) Revoke(url string) {
	r.mu.Lock()
	delete(r.blobs, url)
	r.mu.Unlock()
}

// RevokeAll releases every live blob. Called when the records that held the
// URLs are discarded wholesale, as on a demo-data reset.
func (r *Registry) RevokeAll() {
	r.mu.Lock()
	r.blobs = make(map[string]entry)
	r.mu.Unlock()
}

// Len reports how many blobs are live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
