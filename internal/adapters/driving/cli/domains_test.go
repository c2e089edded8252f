package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/services"
)

func TestRideCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "ride", "-p", "time", "-l", "Times Square", "to", "JFK")
	require.NoError(t, err)

	h := ts.orchestrator.handlers[domain.DomainRideshare]
	assert.Equal(t, "to JFK", h.lastQuery)
	assert.Equal(t, domain.PriorityTime, h.lastPriority)
	assert.Equal(t, "Times Square", h.lastQCtx.UserLocation)
	assert.Contains(t, out, "RIDESHARE")
	assert.NotContains(t, out, "RESTAURANTS")
}

func TestFoodCmd_Preferences(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "--category", "Drinks", "--price", "$$", "--dietary", "vegan,halal", "bars near SoHo")
	require.NoError(t, err)

	h := ts.orchestrator.handlers[domain.DomainRestaurants]
	assert.Equal(t, map[string]string{
		services.PrefFilterCategory: "Drinks",
		services.PrefPriceRange:     "$$",
		services.PrefDietary:        "vegan,halal",
	}, h.lastQCtx.Preferences)
	assert.Equal(t, domain.PriorityBalanced, h.lastPriority)
	assert.Contains(t, out, "Sushi Nakazawa")
}

func TestFoodCmd_NoPreferences(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "food", "pizza")
	require.NoError(t, err)
	assert.Nil(t, ts.orchestrator.handlers[domain.DomainRestaurants].lastQCtx.Preferences)
}

func TestFoodCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "--json", "pizza")
	require.NoError(t, err)

	var res domain.HandlerResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.DomainRestaurants, res.Domain)
	require.NotNil(t, res.Restaurants)
	assert.Len(t, res.Restaurants.Options, 1)
}

func TestRideCmd_DisabledDomain(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	delete(ts.orchestrator.handlers, domain.DomainRideshare)

	_, err := execute(t, "ride", "to JFK")
	require.ErrorIs(t, err, domain.ErrUnknownDomain)
	assert.Contains(t, err.Error(), "rideshare is not enabled")
}

func TestRideCmd_NeedsDetail(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.orchestrator.handlers[domain.DomainRideshare].err =
		domain.NewValidationError(domain.DomainRideshare, "destination", "Where are you going?")

	_, err := execute(t, "ride", "a car please")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, err.Error(), "need more detail")
}

func TestRideCmd_NoOptions(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	empty := rideResult()
	empty.Rides.Options = nil
	ts.orchestrator.handlers[domain.DomainRideshare].result = empty

	out, err := execute(t, "ride", "to JFK")
	require.NoError(t, err)
	assert.Contains(t, out, "No options found.")
}
