package storage

import (
	"context"
	"errors"
)

// ErrStore wraps any storage collaborator failure. A failed upload aborts
// the operation that needed it; nothing retries here.
var ErrStore = errors.New("document store error")

// DocumentStore is the external collaborator that keeps resume files and
// hands back an opaque public reference for them.
type DocumentStore interface {
	Store(ctx context.Context, data []byte, mimeType, filename string) (string, error)
}
