package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dotatracker/api/dto"
	"dotatracker/pkg/redis"
)

// Default key and duration for the match details.
const (
	matchDetailCacheDuration = 5 * time.Minute
	matchDetailKey           = "match:detail:%d"
)

// MatchCache is the public interface for the match detail cache.
type MatchCache interface {
	GetFullMatch(ctx context.Context, matchId int64) (*dto.FullMatch, error)
	SetFullMatch(ctx context.Context, match *dto.FullMatch) error
	InvalidateFullMatch(ctx context.Context, matchId int64) error
}

// Create a redis cache client.
type matchCache struct {
	redis *redis.RedisClient
}

// NewMatchCache creates a new instance of the match redis client.
func NewMatchCache(redis *redis.RedisClient) MatchCache {
	return &matchCache{
		redis: redis,
	}
}

// GetFullMatch retrieves a cached match detail, nil on miss.
func (mc *matchCache) GetFullMatch(ctx context.Context, matchId int64) (*dto.FullMatch, error) {
	raw, err := mc.redis.Get(ctx, fmt.Sprintf(matchDetailKey, matchId))
	if err != nil {
		// Treat any miss or redis issue as a cache miss.
		return nil, nil
	}

	var match dto.FullMatch
	if err := json.Unmarshal([]byte(raw), &match); err != nil {
		return nil, err
	}

	return &match, nil
}

// SetFullMatch stores the match detail.
func (mc *matchCache) SetFullMatch(ctx context.Context, match *dto.FullMatch) error {
	encoded, err := json.Marshal(match)
	if err != nil {
		return err
	}

	return mc.redis.Set(ctx, fmt.Sprintf(matchDetailKey, match.MatchId), encoded, matchDetailCacheDuration)
}

// InvalidateFullMatch drops the cached detail after a refresh.
func (mc *matchCache) InvalidateFullMatch(ctx context.Context, matchId int64) error {
	return mc.redis.Del(ctx, fmt.Sprintf(matchDetailKey, matchId)).Err()
}
