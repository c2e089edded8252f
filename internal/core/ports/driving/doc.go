// Package driving defines the interfaces that external actors call INTO core.
//
// These are the "driving" or "primary" ports. The CLI, TUI and MCP adapters
// only ever talk to core through them.
//
//   - DomainRouter: decides which domains should answer a raw query
//   - DomainHandler: runs one domain's parse, fetch, compare, format pipeline
//   - Orchestrator: routes a query and runs every selected handler
//   - StatsService: exposes cache and rate-limiter state
//   - SettingsService: reads and writes persisted configuration
//   - Scheduler: runs background maintenance for long-lived commands
package driving
