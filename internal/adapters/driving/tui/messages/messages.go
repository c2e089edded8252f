// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/hopwise/hopwise/internal/core/domain"
)

// AskCompleted carries the orchestrator answer back to the model.
type AskCompleted struct {
	Result domain.AskResult
	Err    error
}

// StatsLoaded carries cache and rate-limit state.
type StatsLoaded struct {
	Cache   *domain.CacheStats
	Windows []domain.RateWindow
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the query input and answer view.
	ViewAsk
	// ViewStats shows cache and rate-limit state.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
