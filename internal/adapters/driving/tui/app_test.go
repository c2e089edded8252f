package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/messages"
	"github.com/hopwise/hopwise/internal/core/domain"
)

func newTestApp(t *testing.T, orch *mockOrchestrator, withStats bool) *App {
	t.Helper()
	ports := &Ports{
		Orchestrator: orch,
		QueryContext: domain.QueryContext{UserLocation: "Times Square"},
	}
	if withStats {
		ports.Stats = mockStats{}
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// send delivers msg and feeds the produced messages back into the app until
// depth runs out. From a batch only the answer is delivered; spinner ticks
// would otherwise loop forever.
func send(app *App, msg tea.Msg, depth int) {
	if depth == 0 || msg == nil {
		return
	}
	_, cmd := app.Update(msg)
	drain(app, cmd, depth-1)
}

func drain(app *App, cmd tea.Cmd, depth int) {
	if cmd == nil || depth == 0 {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if m, ok := c().(messages.AskCompleted); ok {
				send(app, m, depth)
			}
		}
		return
	}
	if _, quit := msg.(tea.QuitMsg); quit {
		return
	}
	send(app, msg, depth)
}

func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&Ports{Orchestrator: &mockOrchestrator{}})
	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	_, err = NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingOrchestrator)
}

func TestApp_InitAndContext(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{}, false)
	assert.NotNil(t, app.Init())

	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")
	assert.Same(t, app, app.WithContext(ctx))
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Orchestrator: &mockOrchestrator{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Hopwise")
}

func TestApp_AskFlow(t *testing.T) {
	orch := &mockOrchestrator{result: domain.AskResult{
		RequestID: "req-1",
		Decision:  domain.RoutingDecision{Domains: []domain.Domain{domain.DomainRideshare}},
		Results: []domain.HandlerResult{{
			Domain: domain.DomainRideshare,
			Rides: &domain.Outcome[domain.RideQuery, domain.RideEstimate]{
				Options: []domain.RideEstimate{{
					Provider: "uber", VehicleType: "UberX", IsAvailable: true, PriceEstimate: 25,
				}},
				Recommendation: domain.Recommendation{Text: "Take the Uber", Source: domain.SourceRule},
			},
		}},
	}}
	app := newTestApp(t, orch, false)

	send(app, messages.ViewChanged{View: messages.ViewAsk}, 1)
	assert.Equal(t, messages.ViewAsk, app.CurrentView())

	typeText(app, "ride to JFK")
	assert.Equal(t, "ride to JFK", app.Query())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(app, cmd, 3)

	require.NotNil(t, app.Result())
	assert.Equal(t, "req-1", app.Result().RequestID)
	assert.Equal(t, "Times Square", orch.qctx.UserLocation)
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "Take the Uber")
}

func TestApp_AskError(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{err: errors.New("providers down")}, false)
	send(app, messages.ViewChanged{View: messages.ViewAsk}, 1)
	typeText(app, "food")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(app, cmd, 3)

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "providers down")
}

func TestApp_StatsView(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{}, true)

	send(app, messages.ViewChanged{View: messages.ViewStats}, 2)
	assert.Equal(t, messages.ViewStats, app.CurrentView())
	assert.Contains(t, app.View(), "memory")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{}, false)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Cycle priority")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{}, false)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &mockOrchestrator{}, false)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})
	assert.Equal(t, boom, app.Err())
}
