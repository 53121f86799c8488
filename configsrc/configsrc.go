// Package configsrc abstracts where the bytes of a declarative graph
// document come from. It is deliberately narrow: Source only fetches
// the document that parser.Registry will turn into nodes and edges. It
// has nothing to do with persisting run/execution state, which stays
// out of scope for the engine itself.
package configsrc

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound is returned by a Source when the named document does not
// exist in its backing store.
var ErrNotFound = errors.New("configsrc: document not found")

// Source fetches the raw bytes of a graph document.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// File reads a document from the local filesystem.
type File struct {
	Path string
}

// Load implements Source.
func (f File) Load(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Static returns a fixed, already-in-memory document. Useful for tests
// and for embedding a graph document in a Go binary.
type Static struct {
	Bytes []byte
}

// Load implements Source.
func (s Static) Load(_ context.Context) ([]byte, error) {
	if s.Bytes == nil {
		return nil, ErrNotFound
	}
	return s.Bytes, nil
}
