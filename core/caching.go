package core

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/metrics"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// currentCacheVersion defines the version of the cached series layout.
// Bump it whenever a transform changes its output.
const currentCacheVersion = 1

// CacheVersion reports the cached series layout version entries are written with.
func CacheVersion() int {
	return currentCacheVersion
}

// cachedSeries returns the cached result for (operation, scope, mode) when it is
// fresh, or computes and stores it. Cache failures only cost a recomputation.
func cachedSeries[T any](ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, operation string, scope schema.Scope, mode schema.ChartMode, compute func() (T, error)) (T, error) {
	cache := mgr.GetCacheStore()
	if cache == nil {
		return compute()
	}

	fingerprint, err := mgr.GetHistoryStore().Fingerprint(ctx, scope)
	if err != nil {
		contract.Logger.Debug().Err(err).Str("operation", operation).Msg("cannot fingerprint scope, skipping cache")
		return compute()
	}
	key := generateCacheKey(operation, scope, mode, fingerprint)

	// Check for cache hit
	if result, ok := checkCacheHit[T](cache, key, cacheTTL(cfg)); ok {
		contract.Logger.Debug().Str("operation", operation).Int64("scope_id", scope.ID).Msg("series cache hit")
		return result, nil
	}

	// Cache miss: compute and store
	result, err := compute()
	if err != nil {
		return result, err
	}
	data, err := json.Marshal(result)
	if err == nil {
		err = cache.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	if err != nil {
		contract.Logger.Debug().Err(err).Str("operation", operation).Msg("cannot store series in cache")
	}
	return result, nil
}

// checkCacheHit attempts to retrieve and validate a cached result.
func checkCacheHit[T any](cache contract.CacheStore, key string, ttl time.Duration) (T, bool) {
	var result T
	data, version, ts, err := cache.Get(key)
	if err != nil {
		if isCacheMiss(err) {
			metrics.Default.RecordCacheLookup(metrics.CacheMiss)
		} else {
			contract.Logger.Debug().Err(err).Msg("series cache read failed")
			metrics.Default.RecordCacheLookup(metrics.CacheError)
		}
		return result, false
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > ttl {
		metrics.Default.RecordCacheLookup(metrics.CacheMiss)
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		contract.Logger.Debug().Err(err).Msg("series cache entry is corrupt")
		metrics.Default.RecordCacheLookup(metrics.CacheError)
		return result, false
	}
	metrics.Default.RecordCacheLookup(metrics.CacheHit)
	return result, true
}

// generateCacheKey creates a unique key from the request and the state of the stored history.
func generateCacheKey(operation string, scope schema.Scope, mode schema.ChartMode, fingerprint string) string {
	var start int64
	if scope.Start != nil {
		start = scope.Start.Unix()
	}
	key := fmt.Sprintf("%s:%s:%d:%d:%s:%s",
		operation,
		scope.Kind,
		scope.ID,
		start,
		mode,
		fingerprint,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

func cacheTTL(cfg *contract.Config) time.Duration {
	if cfg == nil || cfg.CacheTTL <= 0 {
		return contract.DefaultCacheTTL
	}
	return cfg.CacheTTL
}

// isCacheMiss reports whether a cache read failed only because the key is absent.
func isCacheMiss(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
