package recommendation

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"lankagrocer/backend/internal/cache"
	"lankagrocer/backend/internal/distance"
	"lankagrocer/backend/internal/domain"
)

// Scoring weights. Lower score ranks first: proximity dominates, each open
// delivery pushes an agent down, a good rating pulls them up.
const (
	WeightDistance = 0.6
	WeightWorkload = 5.0
	WeightRating   = 2.0
)

const DefaultTopN = 3

type Engine struct {
	distances distance.Table
	cache     cache.RankingCache
	cacheTTL  time.Duration
}

func NewEngine(distances distance.Table, cacheStore cache.RankingCache, cacheTTL time.Duration) *Engine {
	if distances == nil {
		distances = distance.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.NoopRankingCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 20 * time.Second
	}

	return &Engine{
		distances: distances,
		cache:     cacheStore,
		cacheTTL:  cacheTTL,
	}
}

// Score computes the composite ranking score for one agent. Missing agent
// data (zero workload, zero rating) simply contributes nothing.
func Score(distanceKm float64, workload int, rating float64) float64 {
	return distanceKm*WeightDistance + float64(workload)*WeightWorkload - rating*WeightRating
}

// TargetArea resolves the area an order should be matched against: the
// order's area, falling back to the free-form delivery address. An empty
// result means every candidate gets the fallback distance.
func TargetArea(order domain.Order) string {
	if order.Area != "" {
		return order.Area
	}
	return order.DeliveryAddress
}

// Rank scores the given candidates against the order's target area and
// returns the best topN in ascending score order. Candidates are copied;
// the caller's slice is never reordered or mutated. An empty candidate
// list yields an empty ranking, not an error.
func (e *Engine) Rank(ctx context.Context, order domain.Order, candidates []domain.Agent, topN int) []domain.RankedAgent {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(candidates) == 0 {
		return []domain.RankedAgent{}
	}

	cacheKey := buildCacheKey(order, candidates, topN)
	if cached, ok, err := e.cache.Get(ctx, cacheKey); err == nil && ok {
		return cached
	}

	area := TargetArea(order)
	ranked := make([]domain.RankedAgent, 0, len(candidates))
	for _, agent := range candidates {
		km := e.distances.DistanceKm(area, agent.Area)
		ranked = append(ranked, domain.RankedAgent{
			Agent:      agent,
			DistanceKm: km,
			Score:      Score(km, agent.CurrentWorkload, agent.Rating),
		})
	}

	slices.SortFunc(ranked, func(a, b domain.RankedAgent) int {
		if a.Score < b.Score {
			return -1
		}
		if a.Score > b.Score {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	_ = e.cache.Set(ctx, cacheKey, ranked, e.cacheTTL)
	return ranked
}

// buildCacheKey hashes every ranking input, so any change to the candidate
// set (workload, rating, area, availability churn) produces a fresh key.
// Stale entries age out via TTL instead of explicit invalidation.
func buildCacheKey(order domain.Order, candidates []domain.Agent, topN int) string {
	parts := make([]string, 0, len(candidates)+2)
	parts = append(parts, TargetArea(order))
	for _, agent := range candidates {
		parts = append(parts, fmt.Sprintf("%s:%s:%d:%.1f", agent.ID, agent.Area, agent.CurrentWorkload, agent.Rating))
	}
	parts = append(parts, fmt.Sprintf("n:%d", topN))

	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return "dispatch:ranking:" + hex.EncodeToString(hash[:])
}
