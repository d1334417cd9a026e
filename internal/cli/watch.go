package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/summary"
	"github.com/alexanderramin/worklog/internal/tracker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the active event and today's timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			m := newWatchModel(app)
			if app.WatchPath != "" {
				changed, err := watchDatabase(ctx, app.WatchPath, app.Logger)
				if err != nil {
					return err
				}
				m.dbChanges = changed
			}
			defer app.Tracker.Unsubscribe(m.changes)

			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return err
			}
			app.Tracker.Wait()
			return nil
		},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// watchTickMsg redraws running durations.
type watchTickMsg time.Time

// trackerChangedMsg carries a transition made through the tracker.
type trackerChangedMsg tracker.Change

// dbChangedMsg signals that another process wrote to the database.
type dbChangedMsg struct{}

// watchLoadedMsg delivers a fresh snapshot of the tracker.
type watchLoadedMsg struct {
	data watchData
	err  error
}

// actionDoneMsg reports the outcome of a key-triggered transition.
type actionDoneMsg struct {
	verb  string
	event domain.WorkEvent
	ok    bool
	err   error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type watchKeyMap struct {
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Reload: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Stop, k.Help, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Resume, k.Stop},
		{k.Reload, k.Help, k.Quit},
	}
}

// ── model ────────────────────────────────────────────────────────────────────

// watchData is one snapshot of the tracker for rendering.
type watchData struct {
	active   *domain.WorkEvent
	state    domain.EventState
	activeID string
	day      summary.DaySummary
}

type watchModel struct {
	app       *App
	keys      watchKeyMap
	help      help.Model
	changes   <-chan tracker.Change
	dbChanges <-chan struct{}

	data    watchData
	now     time.Time
	status  string
	err     error
	width   int
	loading bool
}

func newWatchModel(app *App) watchModel {
	return watchModel{
		app:     app,
		keys:    newWatchKeyMap(),
		help:    help.New(),
		changes: app.Tracker.Subscribe(8),
		now:     app.Tracker.Now(),
		loading: true,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadData(),
		m.tick(),
		waitForChange(m.changes),
		waitForDB(m.dbChanges),
	)
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.app.refreshInterval(), func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func waitForChange(ch <-chan tracker.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return trackerChangedMsg(c)
	}
}

func waitForDB(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// loadData snapshots the tracker and today's summary.
func (m watchModel) loadData() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		now := app.Tracker.Now()
		data := watchData{}
		if e, ok := app.Tracker.Active(); ok {
			state, _ := app.Tracker.StateOf(e.ID)
			data.active = &e
			data.state = state
			data.activeID = e.ID
		}
		day, err := app.Summary.Day(context.Background(), now)
		if err != nil {
			return watchLoadedMsg{err: err}
		}
		data.day = day
		return watchLoadedMsg{data: data}
	}
}

// reload re-reads the database, then snapshots.
func (m watchModel) reload() tea.Cmd {
	app := m.app
	load := m.loadData()
	return func() tea.Msg {
		if err := app.Tracker.Load(context.Background()); err != nil {
			return watchLoadedMsg{err: fmt.Errorf("reloading: %w", err)}
		}
		return load()
	}
}

func (m watchModel) act(verb string, fn func(ctx context.Context) (domain.WorkEvent, bool, error)) tea.Cmd {
	return func() tea.Msg {
		e, ok, err := fn(context.Background())
		return actionDoneMsg{verb: verb, event: e, ok: ok, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case watchTickMsg:
		m.now = time.Time(msg)
		return m, tea.Batch(m.loadData(), m.tick())

	case trackerChangedMsg:
		return m, tea.Batch(m.loadData(), waitForChange(m.changes))

	case dbChangedMsg:
		return m, tea.Batch(m.reload(), waitForDB(m.dbChanges))

	case watchLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
			m.now = m.app.Tracker.Now()
		}
		return m, nil

	case actionDoneMsg:
		switch {
		case msg.err != nil:
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
		case !msg.ok:
			m.status = formatter.Dim("Nothing to " + strings.ToLower(msg.verb) + ".")
		default:
			m.status = strings.TrimSpace(formatter.FormatTransition(verbPast(msg.verb), msg.event))
		}
		return m, m.loadData()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			return m, m.act("Pause", m.app.Tracker.Pause)
		case key.Matches(msg, m.keys.Resume):
			return m, m.act("Resume", func(ctx context.Context) (domain.WorkEvent, bool, error) {
				return m.app.Tracker.Resume(ctx, "")
			})
		case key.Matches(msg, m.keys.Stop):
			return m, m.act("Stop", m.app.Tracker.Stop)
		case key.Matches(msg, m.keys.Reload):
			return m, m.reload()
		}
	}
	return m, nil
}

func verbPast(verb string) string {
	switch verb {
	case "Stop":
		return "Stopped"
	default:
		return verb + "d"
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("WORKLOG") + "  " + formatter.Dim(m.now.Format("Mon Jan 2 15:04:05")) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	default:
		if m.data.active != nil {
			b.WriteString(formatter.FormatActive(*m.data.active, m.data.state, m.now) + "\n\n")
		} else {
			b.WriteString(formatter.FormatIdle() + "\n")
		}
		b.WriteString(formatter.FormatTimeline(m.data.day.Entries, m.data.activeID))
		b.WriteString("\n")
		b.WriteString(formatter.FormatStats(m.data.day))
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
