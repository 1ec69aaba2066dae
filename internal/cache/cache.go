package cache

import (
	"context"
	"time"

	"lankagrocer/backend/internal/domain"
)

type RankingCache interface {
	Get(ctx context.Context, key string) ([]domain.RankedAgent, bool, error)
	Set(ctx context.Context, key string, value []domain.RankedAgent, ttl time.Duration) error
}

type NoopRankingCache struct{}

func (NoopRankingCache) Get(_ context.Context, _ string) ([]domain.RankedAgent, bool, error) {
	return nil, false, nil
}

func (NoopRankingCache) Set(_ context.Context, _ string, _ []domain.RankedAgent, _ time.Duration) error {
	return nil
}
