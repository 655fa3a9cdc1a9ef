package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/acadstack/qcatalog-backend/internal/config"
	"github.com/acadstack/qcatalog-backend/internal/model"
)

// The catalog lives in exactly one row; the CHECK pins the id so a second
// row can never appear.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS catalog_document (
	id   smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	body jsonb NOT NULL
)`

// PostgresGateway stores the document as a single jsonb row.
type PostgresGateway struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresGateway creates a validated connection pool and ensures the
// document table exists.
func NewPostgresGateway(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*PostgresGateway, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxDBConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	log.Info().Int32("max_conns", cfg.MaxDBConns).Msg("PostgreSQL connected")

	return &PostgresGateway{
		pool: pool,
		log:  log.With().Str("component", "postgres_gateway").Logger(),
	}, nil
}

func (g *PostgresGateway) Load(ctx context.Context) (*model.Document, error) {
	var raw []byte
	err := g.pool.QueryRow(ctx, `SELECT body FROM catalog_document WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		doc := model.EmptyDocument()
		if err := g.Save(ctx, doc); err != nil {
			return nil, err
		}
		g.log.Info().Msg("Bootstrapped empty catalog row")
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select document: %v", ErrUnavailable, err)
	}

	doc := &model.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
	}
	if doc.Branches == nil {
		doc.Branches = []model.Branch{}
	}
	return doc, nil
}

func (g *PostgresGateway) Save(ctx context.Context, doc *model.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrUnavailable, err)
	}
	_, err = g.pool.Exec(ctx, `
		INSERT INTO catalog_document (id, body) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body
	`, payload)
	if err != nil {
		return fmt.Errorf("%w: upsert document: %v", ErrUnavailable, err)
	}
	return nil
}

func (g *PostgresGateway) Close() {
	g.pool.Close()
}
