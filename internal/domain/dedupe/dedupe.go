// Package dedupe remembers demo checksums so a demo uploaded twice is
// analysed once.
package dedupe

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxSize = 10_000

// Deduper maps demo checksums to the match id they were first uploaded as.
type Deduper interface {
	// Claim records checksum for id unless the checksum is already known.
	// It returns the id the checksum belongs to and whether it was known.
	Claim(ctx context.Context, checksum, id string) (string, bool)

	// Release forgets checksum so the demo can be uploaded again, e.g.
	// after the queue refused it.
	Release(ctx context.Context, checksum string)

	// Size returns the number of remembered checksums.
	Size() int64
}

// inMemoryDeduper keeps the most recent checksums in an LRU cache. With a
// non-positive size it keeps every checksum.
type inMemoryDeduper struct {
	maxSize int
	cache   *lru.Cache[string, string]

	mu   sync.Mutex
	seen map[string]string
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxSize > 0 {
		// New only fails for non-positive sizes.
		d.cache, _ = lru.New[string, string](d.maxSize)
	} else {
		d.seen = make(map[string]string)
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, checksum, id string) (string, bool) {
	if d.cache != nil {
		if prev, ok, _ := d.cache.PeekOrAdd(checksum, id); ok {
			return prev, true
		}
		return id, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.seen[checksum]; ok {
		return prev, true
	}
	d.seen[checksum] = id
	return id, false
}

func (d *inMemoryDeduper) Release(_ context.Context, checksum string) {
	if d.cache != nil {
		d.cache.Remove(checksum)
		return
	}
	d.mu.Lock()
	delete(d.seen, checksum)
	d.mu.Unlock()
}

func (d *inMemoryDeduper) Size() int64 {
	if d.cache != nil {
		return int64(d.cache.Len())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
