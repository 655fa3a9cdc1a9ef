package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadstack/qcatalog-backend/internal/config"
	"github.com/acadstack/qcatalog-backend/internal/model"
)

// documentKey holds the whole serialized catalog; redis SET replaces the
// value atomically, satisfying the no-partial-write contract.
const documentKey = "catalog:document"

// RedisGateway stores the document under a single redis key.
type RedisGateway struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisGateway creates and validates a redis client connection.
func NewRedisGateway(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*RedisGateway, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("Redis connected")

	return &RedisGateway{
		rdb: rdb,
		log: log.With().Str("component", "redis_gateway").Logger(),
	}, nil
}

func (g *RedisGateway) Load(ctx context.Context) (*model.Document, error) {
	raw, err := g.rdb.Get(ctx, documentKey).Bytes()
	if errors.Is(err, redis.Nil) {
		doc := model.EmptyDocument()
		if err := g.Save(ctx, doc); err != nil {
			return nil, err
		}
		g.log.Info().Str("key", documentKey).Msg("Bootstrapped empty catalog key")
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, documentKey, err)
	}

	doc := &model.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, documentKey, err)
	}
	if doc.Branches == nil {
		doc.Branches = []model.Branch{}
	}
	return doc, nil
}

func (g *RedisGateway) Save(ctx context.Context, doc *model.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrUnavailable, err)
	}
	if err := g.rdb.Set(ctx, documentKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, documentKey, err)
	}
	return nil
}

func (g *RedisGateway) Close() error {
	return g.rdb.Close()
}
