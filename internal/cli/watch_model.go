package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tasker-app/tasker/internal/cli/formatter"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/reconcile"
)

type watchKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Toggle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type (
	// clockMsg redraws live counters.
	clockMsg time.Time
	// pollMsg asks for a scheduled reconcile.
	pollMsg struct{}
	// stateMsg carries the result of a reconcile.
	stateMsg struct {
		state reconcile.State
		err   error
	}
	// toggledMsg reports the outcome of a start or stop.
	toggledMsg struct{ err error }
)

// watchModel is the full-screen view of one user's work state.
type watchModel struct {
	ctx     context.Context
	app     *App
	rec     *reconcile.Reconciler
	userID  string
	poll    time.Duration
	state   reconcile.State
	err     error
	now     time.Time
	busy    bool
	keys    watchKeyMap
	help    help.Model
	spinner spinner.Model
}

func newWatchModel(ctx context.Context, app *App, rec *reconcile.Reconciler, userID string, poll time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StyleHeader

	return watchModel{
		ctx:     ctx,
		app:     app,
		rec:     rec,
		userID:  userID,
		poll:    poll,
		state:   rec.Provisional(),
		now:     app.now(),
		busy:    true,
		keys:    defaultWatchKeyMap(),
		help:    help.New(),
		spinner: s,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, clockTick(), m.reconcile(), m.schedulePoll())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m watchModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.poll, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m watchModel) reconcile() tea.Cmd {
	return func() tea.Msg {
		state, err := m.rec.Reconcile(m.ctx)
		return stateMsg{state: state, err: err}
	}
}

// toggle starts a session when idle and stops the known one when working.
// The displayed state is only replaced by the reconcile that follows.
func (m watchModel) toggle() tea.Cmd {
	working, sessionID := m.state.Working, m.state.SessionID
	return func() tea.Msg {
		if working {
			if _, err := m.app.Sessions.StopSession(m.ctx, m.userID, sessionID); err != nil {
				return toggledMsg{err: err}
			}
			m.rec.Stopped()
			return toggledMsg{}
		}
		s, err := m.app.Sessions.StartSession(m.ctx, m.userID)
		if err != nil {
			return toggledMsg{err: err}
		}
		m.rec.Started(s)
		return toggledMsg{}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.reconcile()
		case key.Matches(msg, m.keys.Toggle):
			if m.busy || m.state.Provisional {
				return m, nil
			}
			m.busy = true
			return m, m.toggle()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case pollMsg:
		return m, tea.Batch(m.reconcile(), m.schedulePoll())

	case stateMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.state = msg.state
		}
		return m, nil

	case toggledMsg:
		// Reconcile either way: a conflict means the server knows better.
		m.err = msg.err
		return m, m.reconcile()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	status := formatter.WorkingBadge(m.state.Working)
	if m.state.Working {
		status += "  " + formatter.Bold(formatter.FormatClock(m.state.Elapsed(m.now)))
		status += "  " + formatter.Dim("since "+formatter.Clock(m.state.StartedAt, m.app.location()))
	}
	if m.busy {
		status += "  " + m.spinner.View()
	}
	b.WriteString(status + "\n")

	if !m.state.Provisional {
		fmt.Fprintf(&b, "%s  %s %s\n", formatter.Dim("Today"),
			formatter.FormatDuration(m.state.TodayTotal(m.now)),
			formatter.Dim(fmt.Sprintf("(%d sessions)", m.state.TodayCount)))
		if m.state.LastFinished != nil {
			fmt.Fprintf(&b, "%s  %s, %s\n", formatter.Dim("Last "),
				formatter.FormatDuration(m.state.LastFinished.Duration(m.now)),
				formatter.HumanTimestamp(*m.state.LastFinished.EndedAt, m.now))
		}
		fmt.Fprintf(&b, "%s\n", formatter.Dim("synced "+formatter.Clock(m.state.ReconciledAt, m.app.location())))
	} else {
		b.WriteString(formatter.Dim("waiting for server...") + "\n")
	}

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(domain.MessageOf(m.err)) + "\n")
	}

	return formatter.RenderBox("tasker watch", strings.TrimRight(b.String(), "\n")) + "\n" + m.help.View(m.keys) + "\n"
}
