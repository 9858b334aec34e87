package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"smartreply/app/config"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"golang.org/x/sync/singleflight"
)

var _ do.Shutdownable = (*Service)(nil)

// Service is a read-through cache for quick-reply responses. It is a
// no-op when no redis host is configured; cache errors are logged and
// treated as misses so redis never affects response semantics.
type Service struct {
	cfg    *config.Config
	client *redis.Client
	group  singleflight.Group
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := &Service{cfg: cfg}

	if cfg.Redis.Host == "" {
		slog.Info("Quick-reply cache disabled")
		return s, nil
	}

	s.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis is not reachable, quick-reply cache disabled", "error", err)
		s.client = nil
	}

	return s, nil
}

// GetOrCompute returns the cached value for key or computes and stores
// it. Concurrent calls for the same key share a single computation.
func (s *Service) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	if s.client == nil {
		return compute()
	}

	value, err, _ := s.group.Do(key, func() (any, error) {
		cached, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			slog.Warn("Cache read failed", "key", key, "error", err)
		}

		computed, err := compute()
		if err != nil {
			return nil, err
		}

		if err = s.client.Set(ctx, key, computed, s.cfg.Redis.CacheTTL).Err(); err != nil {
			slog.Warn("Cache write failed", "key", key, "error", err)
		}

		return computed, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]byte), nil
}

// Key builds a stable cache key from request parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	return "smartreply:quick:" + hex.EncodeToString(h.Sum(nil))
}

func (s *Service) Shutdown() error {
	if s.client == nil {
		return nil
	}

	return s.client.Close()
}
