package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type countMsg struct{}

// counter increments on every countMsg and on "+"; its Init fires one
// immediate count and one slow tick that the driver must drop.
type counter struct {
	n     int
	ticks int
	width int
}

func (c counter) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return countMsg{} },
		tea.Tick(time.Hour, func(time.Time) tea.Msg { return countMsg{} }),
	)
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countMsg:
		c.n++
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, func() tea.Msg { return countMsg{} }
		case "ctrl+c":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsImmediateAndDropsTimers(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()

	m := d.Model.(counter)
	assert.Equal(t, 1, m.n)
	assert.Equal(t, 80, m.width)
}

func TestDriver_KeyChainsCommand(t *testing.T) {
	d := New(t, counter{}, WithCmdTimeout(20*time.Millisecond))
	d.PressKey('+')
	d.PressKey('+')

	assert.Equal(t, 2, d.Model.(counter).n)
}

func TestDriver_QuitStopsSending(t *testing.T) {
	d := New(t, counter{})
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, 0, d.Model.(counter).n)
}
