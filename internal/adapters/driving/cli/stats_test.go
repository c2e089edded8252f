package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "Cache")
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Rate limits")
	assert.Contains(t, out, "uber")
	assert.Contains(t, out, "997")
	assert.Contains(t, out, "2026-10-17 09:00:00")
}

func TestStatsCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "stats", "--json")
	require.NoError(t, err)

	var got statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Cache)
	assert.Equal(t, int64(3), got.Cache.Hits)
	require.Len(t, got.RateWindows, 1)
	assert.Equal(t, 1000, got.RateWindows[0].Threshold)
}

func TestStatsCmd_Degraded(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.stats.cacheErr = errors.New("redis unreachable")
	ts.stats.windows = nil

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "unavailable: redis unreachable")
	assert.Contains(t, out, "No provider called yet.")

	ts.stats.err = errors.New("redis unreachable")
	_, err = execute(t, "stats")
	assert.Error(t, err)
}
