package ibx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one raw fetched profile document handed to the core.
// URI identifies where the document came from, for error reporting and for
// progress output; Body is the raw JSON text.
type Document struct {
	URI  string
	Body string
}

// Feed is a bounded queue of raw documents consumed one at a time by the
// scrape pipeline. The core's contract is the same whether the producer is a
// real browser session, a recorded fixture directory, or a direct HTTP
// client; only the producer changes.
type Feed struct {
	ch chan Document
}

// NewFeed creates a Feed with the given buffer size. A buffer of zero makes
// every publish rendezvous with the consumer, which matches the strictly
// sequential processing model; small buffers only smooth producer jitter.
func NewFeed(buffer int) *Feed {
	return &Feed{ch: make(chan Document, buffer)}
}

// Publish enqueues a document, blocking while the queue is full.
func (f *Feed) Publish(ctx context.Context, doc Document) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case f.ch <- doc:
		return nil
	}
}

// Close marks the feed complete. Publish must not be called after Close.
func (f *Feed) Close() {
	close(f.ch)
}

// Documents returns the receive side of the queue. The channel is closed
// when the producer calls Close.
func (f *Feed) Documents() <-chan Document {
	return f.ch
}

// ReadDir loads every .json file in dir as a recorded profile document,
// in lexical filename order. This is the fixture-backed producer used by the
// CLI: profile documents captured from the directory's backend are replayed
// through the same pipeline a live session would use.
func ReadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		body, err := os.ReadFile(path) //nolint:gosec // Operator-supplied fixture directory
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		docs = append(docs, Document{URI: path, Body: string(body)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs, nil
}
