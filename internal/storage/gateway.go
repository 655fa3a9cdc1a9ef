// Package storage provides the persistence gateway: whole-document load
// and save over a single serialized JSON blob. Three drivers share the
// contract — a local file, a single postgres jsonb row, and a single redis
// key. A Save leaves either the previous or the new complete document in
// place, never a partial write.
package storage

import (
	"context"
	"errors"

	"github.com/acadstack/qcatalog-backend/internal/model"
)

// ErrUnavailable wraps failures of the underlying medium when no
// self-healing bootstrap is possible.
var ErrUnavailable = errors.New("storage unavailable")

// Gateway persists the catalog document. Load on an empty medium returns
// the canonical empty document and persists it as the new baseline.
type Gateway interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}
