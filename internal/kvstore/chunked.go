package kvstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DefaultChunkSize is the per-item payload ceiling used when none is
// configured. Matches the 2KB item limit of size-restricted stores.
const DefaultChunkSize = 2048

// Chunked wraps a Store whose items have a size ceiling. Values larger
// than the chunk size are split across numbered keys:
//
//	<base>          holds the chunk count as a decimal string
//	<base>_part0..N hold the chunks in order
//
// A read that finds the count entry but is missing any expected chunk
// reports the value as absent.
type Chunked struct {
	store     Store
	chunkSize int
}

// NewChunked creates a chunked wrapper around store. A chunkSize <= 0
// falls back to DefaultChunkSize.
func NewChunked(store Store, chunkSize int) *Chunked {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunked{store: store, chunkSize: chunkSize}
}

func partKey(base string, n int) string {
	return fmt.Sprintf("%s_part%d", base, n)
}

// Set splits value into chunks and writes them plus the count entry in
// one batch.
func (c *Chunked) Set(ctx context.Context, base, value string) error {
	var chunks []string
	for len(value) > c.chunkSize {
		chunks = append(chunks, value[:c.chunkSize])
		value = value[c.chunkSize:]
	}
	chunks = append(chunks, value)

	pairs := make([]Pair, 0, len(chunks)+1)
	for i, chunk := range chunks {
		pairs = append(pairs, Pair{Key: partKey(base, i), Value: chunk})
	}
	pairs = append(pairs, Pair{Key: base, Value: strconv.Itoa(len(chunks))})

	return c.store.MultiSet(ctx, pairs)
}

// Get reassembles the value stored under base. ok is false when the
// count entry is absent, unparseable, or any chunk is missing.
func (c *Chunked) Get(ctx context.Context, base string) (string, bool, error) {
	countStr, ok, err := c.store.Get(ctx, base)
	if err != nil || !ok {
		return "", false, err
	}

	count, err := strconv.Atoi(countStr)
	if err != nil || count <= 0 {
		return "", false, nil
	}

	keys := make([]string, count)
	for i := range count {
		keys[i] = partKey(base, i)
	}

	parts, err := c.store.MultiGet(ctx, keys)
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	for i := range count {
		chunk, ok := parts[partKey(base, i)]
		if !ok {
			return "", false, nil
		}
		b.WriteString(chunk)
	}
	return b.String(), true, nil
}

// Delete removes the count entry and every chunk it references.
func (c *Chunked) Delete(ctx context.Context, base string) error {
	countStr, ok, err := c.store.Get(ctx, base)
	if err != nil {
		return err
	}
	if ok {
		if count, err := strconv.Atoi(countStr); err == nil {
			for i := range count {
				if err := c.store.Delete(ctx, partKey(base, i)); err != nil {
					return err
				}
			}
		}
	}
	return c.store.Delete(ctx, base)
}
