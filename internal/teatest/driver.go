// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are drained in the calling
// goroutine. Cmds that wait on timers (display ticks, spinners, poll
// schedules) do not return within the command timeout and are dropped, so
// a test only observes the messages a model produces on its own.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds command chains so a self-rescheduling model cannot
// loop forever.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates immediate Cmds (store reads and writes on an
// in-memory database) from timer-driven ones, which take at least 100ms.
const DefaultCmdTimeout = 50 * time.Millisecond

// Driver is a synchronous harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg is seen. The runtime normally
	// intercepts it, so the driver records it itself.
	Quitting bool

	cmdTimeout time.Duration
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends an initial WindowSizeMsg before any other processing.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout changes how long a Cmd may run before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// New creates a Driver for model. Call DrainInit to process Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit executes the model's Init command and drains what follows.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			d.drainCmd(sub, depth+1)
		}
		return
	}

	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// exec runs cmd and returns its message, or nil when it outlives the
// command timeout.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}
