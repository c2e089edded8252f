// Package mcp provides an MCP (Model Context Protocol) server adapter for Hopwise.
// It lets AI assistants route travel queries, plan across domains and compare
// rides or restaurants through the same orchestrator the CLI uses.
package mcp

import "errors"

var (
	// ErrMissingOrchestrator is returned when the orchestrator is not provided.
	ErrMissingOrchestrator = errors.New("mcp: orchestrator is required")

	// ErrMissingRouter is returned when the domain router is not provided.
	ErrMissingRouter = errors.New("mcp: router is required")
)
