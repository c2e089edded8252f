package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopwise/hopwise/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewAsk, "ask"},
		{ViewStats, "stats"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestAskCompleted_CarriesResult(t *testing.T) {
	msg := AskCompleted{Result: domain.AskResult{RequestID: "req-1"}}
	assert.Equal(t, "req-1", msg.Result.RequestID)
	assert.NoError(t, msg.Err)

	msg = AskCompleted{Err: errors.New("boom")}
	assert.EqualError(t, msg.Err, "boom")
}

func TestStatsLoaded_OptionalCache(t *testing.T) {
	msg := StatsLoaded{Windows: []domain.RateWindow{{Provider: "uber"}}}
	assert.Nil(t, msg.Cache)
	assert.Len(t, msg.Windows, 1)
}
