package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/keymap"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/styles"
	"github.com/hopwise/hopwise/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, domain.PriorityBalanced, bar.Priority())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Nil(t, bar.Init())
}

func TestBar_SpinnerOnlyWhileAsking(t *testing.T) {
	bar := NewBar(nil, nil)
	tick := spinner.TickMsg{ID: bar.spinner.ID()}

	_, cmd := bar.Update(tick)
	assert.Nil(t, cmd, "idle bar ignores ticks")

	bar.SetState(StateAsking)
	_, cmd = bar.Update(tick)
	assert.NotNil(t, cmd)
	assert.NotNil(t, bar.Tick())

	_, cmd = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Bar)
		contains []string
	}{
		{"ready", func(*Bar) {}, []string{"Ready", "balanced", "enter: ask"}},
		{"asking", func(b *Bar) { b.SetState(StateAsking) }, []string{"Asking..."}},
		{"error", func(b *Bar) {
			b.SetState(StateError)
			b.SetMessage("boom")
		}, []string{"Error: boom"}},
		{"results", func(b *Bar) {
			b.SetState(StateResults)
			b.SetResultCount(4)
			b.SetPriority(domain.PriorityPrice)
		}, []string{"4 options", "price", "n: new query"}},
		{"results with message", func(b *Bar) {
			b.SetState(StateResults)
			b.SetMessage("1 domain needs more detail")
		}, []string{"needs more detail"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			tt.setup(bar)
			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("x")
	bar.SetResultCount(3)
	bar.SetPriority(domain.PriorityTime)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.ResultCount())
	assert.Equal(t, domain.PriorityTime, bar.Priority())
}
