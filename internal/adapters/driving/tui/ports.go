// Package tui provides an interactive terminal user interface for hopwise.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Orchestrator answers queries.
	Orchestrator driving.Orchestrator

	// Stats reports cache and rate-limit state. Optional.
	Stats driving.StatsService

	// QueryContext is sent with every query (user location, preferences).
	QueryContext domain.QueryContext
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Orchestrator == nil {
		return ErrMissingOrchestrator
	}
	return nil
}
