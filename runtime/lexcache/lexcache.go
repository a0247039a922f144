// Package lexcache memoizes lexing results by content digest, so re-lexing
// an unchanged file (watch mode, repeated checks) costs one hash.
package lexcache

import (
	"bytes"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/frontc/core/invariant"
	"github.com/aledsdavies/frontc/runtime/lexer"
)

// DefaultSize is the number of results kept when New is given size 0.
const DefaultSize = 128

// Digest is the BLAKE2b-256 hash of a source buffer.
type Digest [32]byte

// Sum returns the digest of src.
func Sum(src []byte) Digest {
	return blake2b.Sum256(src)
}

// String renders the digest as "blake2b:<hex>".
func (d Digest) String() string {
	return fmt.Sprintf("blake2b:%x", d[:])
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache is a bounded, concurrency-safe map from source digest to lexing
// result. Cached results are shared between callers and must be treated as
// read-only.
type Cache struct {
	entries *lru.TwoQueueCache[Digest, *lexer.Result]
	opts    []lexer.LexerOpt

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache holding up to size results, lexing misses with opts.
func New(size int, opts ...lexer.LexerOpt) (*Cache, error) {
	invariant.Precondition(size >= 0, "cache size must not be negative, got %d", size)
	if size == 0 {
		size = DefaultSize
	}

	entries, err := lru.New2Q[Digest, *lexer.Result](size)
	if err != nil {
		return nil, fmt.Errorf("create lexing cache: %w", err)
	}
	return &Cache{entries: entries, opts: opts}, nil
}

// Tokenize returns the lexing result for src, lexing only on a miss.
func (c *Cache) Tokenize(src []byte) (*lexer.Result, Digest) {
	digest := Sum(src)
	if result, ok := c.entries.Get(digest); ok {
		c.hits.Add(1)
		return result, digest
	}

	c.misses.Add(1)
	// The result keeps a reference to its source; own a copy so callers may
	// reuse their buffer.
	result := lexer.Tokenize(bytes.Clone(src), c.opts...)
	c.entries.Add(digest, result)
	return result, digest
}

// Get returns a cached result without lexing.
func (c *Cache) Get(digest Digest) (*lexer.Result, bool) {
	return c.entries.Peek(digest)
}

// Len returns the number of cached results.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops every cached result. Counters are kept.
func (c *Cache) Purge() { c.entries.Purge() }

// Stats returns a snapshot of the hit and miss counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}
