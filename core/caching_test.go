package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func TestGenerateCacheKey(t *testing.T) {
	scope := sprintScope()
	key := generateCacheKey("burndown", scope, schema.BurndownMode, "fp")

	assert.Len(t, key, 64)
	assert.Equal(t, key, generateCacheKey("burndown", scope, schema.BurndownMode, "fp"))
	assert.NotEqual(t, key, generateCacheKey("burndown", scope, schema.BurndownMode, "fp2"), "history changes invalidate")
	assert.NotEqual(t, key, generateCacheKey("burnup", scope, schema.BurnupMode, "fp"))

	moved := scope
	start := scope.Start.Add(time.Hour)
	moved.Start = &start
	assert.NotEqual(t, key, generateCacheKey("burndown", moved, schema.BurndownMode, "fp"), "a moved start invalidates")
}

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, contract.DefaultCacheTTL, cacheTTL(nil))
	assert.Equal(t, contract.DefaultCacheTTL, cacheTTL(&contract.Config{}))
	assert.Equal(t, time.Hour, cacheTTL(&contract.Config{CacheTTL: time.Hour}))
}
