package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/acadstack/qcatalog-backend/internal/model"
)

// FileGateway stores the document as a pretty-printed JSON file. Saves
// write to a temp file in the same directory and rename over the target so
// a crashed write never leaves a truncated document behind.
type FileGateway struct {
	path string
	log  zerolog.Logger
}

func NewFileGateway(path string, log zerolog.Logger) *FileGateway {
	return &FileGateway{
		path: path,
		log:  log.With().Str("component", "file_gateway").Logger(),
	}
}

func (g *FileGateway) Load(ctx context.Context) (*model.Document, error) {
	raw, err := os.ReadFile(g.path)
	if os.IsNotExist(err) {
		// Self-healing bootstrap: persist the empty document as baseline.
		doc := model.EmptyDocument()
		if err := g.Save(ctx, doc); err != nil {
			return nil, err
		}
		g.log.Info().Str("path", g.path).Msg("Bootstrapped empty catalog file")
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, g.path, err)
	}

	doc := &model.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, g.path, err)
	}
	if doc.Branches == nil {
		doc.Branches = []model.Branch{}
	}
	return doc, nil
}

func (g *FileGateway) Save(ctx context.Context, doc *model.Document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrUnavailable, err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrUnavailable, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace %s: %v", ErrUnavailable, g.path, err)
	}
	return nil
}
