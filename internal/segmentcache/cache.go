// Package segmentcache stores normalizer output so repeated summaries of the
// same text skip segmentation, tokenization and stemming.
package segmentcache

import (
	"github.com/localrivet/lexsummary/internal/document"
)

// InMemoryPath keeps the SQLite database in process memory.
const InMemoryPath = ":memory:"

// DefaultMaxEntries bounds the number of cached documents.
const DefaultMaxEntries = 256

// Cache defines the interface for storing segmented documents by key.
type Cache interface {
	// Initialize opens the backing store.
	Initialize(dbPath string) error

	// Close closes the cache and releases any resources.
	Close() error

	// Get returns the cached document for key, if present.
	Get(key string) (document.Document, bool, error)

	// Put stores a document under key, evicting the oldest entries when full.
	Put(key string, doc document.Document) error

	// Len returns the number of cached documents.
	Len() (int, error)

	// Clear removes every entry and returns how many were removed.
	Clear() (int, error)
}

// Noop is a Cache that stores nothing.
type Noop struct{}

// Initialize does nothing.
func (Noop) Initialize(string) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }

// Get always misses.
func (Noop) Get(string) (document.Document, bool, error) { return document.Document{}, false, nil }

// Put discards the document.
func (Noop) Put(string, document.Document) error { return nil }

// Len is always zero.
func (Noop) Len() (int, error) { return 0, nil }

// Clear removes nothing.
func (Noop) Clear() (int, error) { return 0, nil }
