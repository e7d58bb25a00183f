package shared

import (
	"context"

	"github.com/rs/zerolog/log"

	"musafir/shared/cache"
	"musafir/shared/constant"
)

// InvalidateCaches clears every cache entry under the given prefix. Callers
// run this from a goroutine with context.WithoutCancel so a finished request
// does not abort the cleanup.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, BuildCacheKey(prefix, constant.Asterix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
