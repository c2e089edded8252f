package mcp

import (
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Orchestrator answers plan queries and exposes the domain handlers.
	Orchestrator driving.Orchestrator

	// Router classifies queries for the route_query tool.
	Router driving.DomainRouter

	// Stats reports cache and rate-limit state. Optional.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Orchestrator == nil {
		return ErrMissingOrchestrator
	}
	if p.Router == nil {
		return ErrMissingRouter
	}
	return nil
}
