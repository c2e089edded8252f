package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// mockOrchestrator implements driving.Orchestrator for testing.
type mockOrchestrator struct {
	result domain.AskResult
	err    error
	qctx   domain.QueryContext
}

func (m *mockOrchestrator) Ask(
	_ context.Context, _ string, qctx domain.QueryContext, _ domain.Priority,
) (domain.AskResult, error) {
	m.qctx = qctx
	return m.result, m.err
}

func (m *mockOrchestrator) Handler(domain.Domain) (driving.DomainHandler, error) {
	return nil, domain.ErrUnknownDomain
}

// mockStats implements driving.StatsService for testing.
type mockStats struct{}

func (mockStats) CacheStats(context.Context) (domain.CacheStats, error) {
	return domain.CacheStats{Backend: "memory", Hits: 1}, nil
}

func (mockStats) RateWindows(context.Context) ([]domain.RateWindow, error) {
	return nil, nil
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingOrchestrator)
	assert.NoError(t, (&Ports{Orchestrator: &mockOrchestrator{}}).Validate())
	assert.NoError(t, (&Ports{Orchestrator: &mockOrchestrator{}, Stats: mockStats{}}).Validate())
}
