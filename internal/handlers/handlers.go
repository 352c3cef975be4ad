package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// IngestService runs match history ingestion for the handlers.
type IngestService interface {
	ResolveSummoner(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error)
	IngestOne(ctx context.Context, puuid string, start, count int) (int, error)
	IngestRoster(ctx context.Context, entries []models.RosterEntry) (string, []models.RosterResult, error)
}

// StatsStore is the slice of the store the leaderboard handlers read from.
type StatsStore interface {
	ParticipantRows(ctx context.Context) ([]models.ParticipantRow, error)
	RowSetVersion(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

// ViewCache stores rendered derived views under version-qualified keys.
// A nil cache disables caching.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a redis client as a ViewCache.
func NewRedisCache(client *redis.Client) ViewCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, body, ttl).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

type Config struct {
	Store    StatsStore
	Ingester IngestService
	Cache    ViewCache
	Logger   *zap.Logger
	CacheTTL time.Duration
}

type Handler struct {
	store    StatsStore
	ingester IngestService
	cache    ViewCache
	logger   *zap.SugaredLogger
	cacheTTL time.Duration
}

func New(cfg Config) *Handler {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Handler{
		store:    cfg.Store,
		ingester: cfg.Ingester,
		cache:    cfg.Cache,
		logger:   cfg.Logger.Sugar(),
		cacheTTL: cfg.CacheTTL,
	}
}
