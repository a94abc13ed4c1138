package tickets

import (
	"context"
	"fmt"
	"time"

	"streakconnect/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// StockGauge mirrors each live's remaining stock into Redis so the portal
// can poll remaining seats without hitting Postgres. The database stays the
// source of truth; the gauge is advisory and rebuilt on every write.
type StockGauge struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStockGauge(redisClient *redis.Client, ttl time.Duration) *StockGauge {
	return &StockGauge{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Lua script so a concurrent reader never sees the gauge between delete and set
const luaSetStock = `
-- KEYS[1] = stock gauge key
-- ARGV[1] = remaining seats
-- ARGV[2] = ttl seconds

redis.call("SET", KEYS[1], ARGV[1])
redis.call("EXPIRE", KEYS[1], tonumber(ARGV[2]))
return redis.call("GET", KEYS[1])
`

// Set publishes the remaining seat count for a live.
func (g *StockGauge) Set(ctx context.Context, liveID string, remaining int) error {
	if g == nil || g.redis == nil {
		return nil
	}
	if remaining < 0 {
		remaining = 0
	}

	key := constants.BuildLiveStockKey(liveID)
	_, err := g.redis.Eval(ctx, luaSetStock, []string{key},
		remaining,
		int(g.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("failed to publish stock gauge: %w", err)
	}
	return nil
}

// Get reads the advisory remaining seat count. The second return value is
// false when the gauge is cold.
func (g *StockGauge) Get(ctx context.Context, liveID string) (int, bool, error) {
	if g == nil || g.redis == nil {
		return 0, false, nil
	}

	key := constants.BuildLiveStockKey(liveID)
	val, err := g.redis.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read stock gauge: %w", err)
	}
	return val, true, nil
}

// Invalidate drops the gauge, forcing the next reader back to the database.
func (g *StockGauge) Invalidate(ctx context.Context, liveID string) error {
	if g == nil || g.redis == nil {
		return nil
	}
	return g.redis.Del(ctx, constants.BuildLiveStockKey(liveID)).Err()
}
