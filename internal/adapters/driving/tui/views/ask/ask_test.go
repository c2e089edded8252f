package ask

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/components/status"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/messages"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// mockOrchestrator implements driving.Orchestrator for testing.
type mockOrchestrator struct {
	result       domain.AskResult
	err          error
	lastQuery    string
	lastPriority domain.Priority
	lastQCtx     domain.QueryContext
}

func (m *mockOrchestrator) Ask(
	_ context.Context, q string, qctx domain.QueryContext, p domain.Priority,
) (domain.AskResult, error) {
	m.lastQuery, m.lastQCtx, m.lastPriority = q, qctx, p
	return m.result, m.err
}

func (m *mockOrchestrator) Handler(domain.Domain) (driving.DomainHandler, error) {
	return nil, domain.ErrUnknownDomain
}

func rideAnswer() domain.AskResult {
	return domain.AskResult{
		RequestID: "req-1",
		Decision:  domain.RoutingDecision{Domains: []domain.Domain{domain.DomainRideshare}},
		Results: []domain.HandlerResult{{
			Domain: domain.DomainRideshare,
			Rides: &domain.Outcome[domain.RideQuery, domain.RideEstimate]{
				Options: []domain.RideEstimate{
					{Provider: "Lyft", VehicleType: "Lyft", PriceEstimate: 20, IsAvailable: true},
					{Provider: "Uber", VehicleType: "UberX", PriceEstimate: 22, IsAvailable: true},
				},
				Recommendation: domain.Recommendation{Text: "Lyft is cheapest at $20.00.", Best: "Lyft"},
			},
		}},
	}
}

func typeQuery(v *View, q string) {
	for _, r := range q {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// run executes a command and feeds the resulting message back, skipping
// batched spinner ticks.
func run(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if m, ok := c().(messages.AskCompleted); ok {
				v.Update(m)
				return
			}
		}
		t.Fatal("no AskCompleted in batch")
	}
	v.Update(msg)
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &mockOrchestrator{})

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.Equal(t, domain.PriorityBalanced, v.Priority())
	assert.Nil(t, v.Result())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_AskFlow(t *testing.T) {
	orch := &mockOrchestrator{result: rideAnswer()}
	v := NewView(nil, nil, orch).WithQueryContext(domain.QueryContext{UserLocation: "SoHo"})
	v.SetDimensions(120, 40)

	typeQuery(v, "ride to jfk")
	assert.Equal(t, "ride to jfk", v.Query())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.InputFocused())
	assert.Equal(t, status.StateAsking, v.statusbar.State())
	run(t, v, cmd)

	assert.Equal(t, "ride to jfk", orch.lastQuery)
	assert.Equal(t, "SoHo", orch.lastQCtx.UserLocation)
	require.NotNil(t, v.Result())
	assert.Len(t, v.Rows(), 2)
	assert.Equal(t, status.StateResults, v.statusbar.State())

	view := v.View()
	assert.Contains(t, view, "Lyft is cheapest")
	assert.Contains(t, view, "UberX")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())
}

func TestView_EmptyQueryDoesNothing(t *testing.T) {
	v := NewView(nil, nil, &mockOrchestrator{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_PriorityCycles(t *testing.T) {
	orch := &mockOrchestrator{result: rideAnswer()}
	v := NewView(nil, nil, orch)

	for _, want := range []domain.Priority{
		domain.PriorityPrice, domain.PriorityTime, domain.PriorityRating, domain.PriorityDistance, domain.PriorityBalanced,
	} {
		v.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, v.Priority())
	}

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeQuery(v, "uber home")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)
	assert.Equal(t, domain.PriorityPrice, orch.lastPriority)
}

func TestView_Clarifications(t *testing.T) {
	ve := domain.NewValidationError(domain.DomainRideshare, "destination", "is missing")
	orch := &mockOrchestrator{
		result: domain.AskResult{
			Decision:       domain.RoutingDecision{Domains: []domain.Domain{domain.DomainRideshare}},
			Clarifications: map[domain.Domain]string{domain.DomainRideshare: ve.Error()},
		},
		err: ve,
	}
	v := NewView(nil, nil, orch)
	v.SetDimensions(120, 40)

	typeQuery(v, "get me a ride")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	assert.NoError(t, v.Err())
	assert.Contains(t, v.statusbar.Message(), "need more detail")
	assert.Contains(t, v.View(), "destination is missing")
}

func TestView_NoDomain(t *testing.T) {
	v := NewView(nil, nil, &mockOrchestrator{})
	v.Update(messages.AskCompleted{})

	assert.Contains(t, v.statusbar.Message(), "Not sure what you need")
}

func TestView_Error(t *testing.T) {
	orch := &mockOrchestrator{err: errors.New("boom")}
	v := NewView(nil, nil, orch)
	v.SetDimensions(120, 40)

	typeQuery(v, "sushi")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	assert.EqualError(t, v.Err(), "boom")
	assert.True(t, v.InputFocused(), "errors return focus to the input")
	assert.Contains(t, v.View(), "Error: boom")
}

func TestView_NoOrchestrator(t *testing.T) {
	v := NewView(nil, nil, nil)
	msg := v.performAsk("x", domain.PriorityBalanced)()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoOrchestrator)
}

func TestView_NewQueryAndEsc(t *testing.T) {
	v := NewView(nil, nil, &mockOrchestrator{result: rideAnswer()})
	v.Update(messages.AskCompleted{Result: rideAnswer()})
	v.focusInput = false

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.True(t, v.InputFocused())
	assert.Equal(t, "", v.Query())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := NewView(nil, nil, &mockOrchestrator{})
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.Update(messages.AskCompleted{Result: rideAnswer()})

	v.Reset()

	assert.Nil(t, v.Result())
	assert.Empty(t, v.Rows())
	assert.Equal(t, domain.PriorityPrice, v.Priority(), "priority survives a reset")
	assert.Equal(t, status.StateReady, v.statusbar.State())
}
