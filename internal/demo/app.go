package demo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"navkit/internal/nav"
	"navkit/internal/view"
)

// navDoneMsg reports a completed navigator operation back to the tea loop.
type navDoneMsg struct {
	op   string
	inst view.Instance
	err  error
}

// defaultOpTimeout bounds a single navigator operation, transitions
// included.
const defaultOpTimeout = 5 * time.Second

// App is the bubbletea root model. It owns the Navigator and serializes
// access to it: operations run in commands while the busy flag gates
// further input, so exactly one operation touches the coordinator at a
// time and the rendered frame is rebuilt only between operations.
type App struct {
	nav *nav.Navigator
	log *slog.Logger

	spin  spinner.Model
	busy  bool
	body  string
	width int
	err   error

	opTimeout time.Duration
}

var _ tea.Model = (*App)(nil)

// NewApp creates the root model over n. log may be nil.
func NewApp(n *nav.Navigator, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHighlight))
	return &App{
		nav:       n,
		log:       log,
		spin:      sp,
		opTimeout: defaultOpTimeout,
	}
}

// Init implements tea.Model. The first operation brings up the menu mode.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.transitionCmd(ModeMenu))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		if !a.busy {
			a.nav.Update()
		}
		return a, cmd

	case navDoneMsg:
		a.busy = false
		a.err = msg.err
		if msg.err != nil {
			a.log.Error("demo: navigator op failed", "op", msg.op, "err", msg.err)
		}
		a.refresh()
		if sh, ok := msg.inst.(*ShellView); ok && msg.err == nil {
			return a, sh.Start()
		}
		if sh, ok := a.nav.Top().(*ShellView); ok && msg.err == nil {
			// A mode enter hook may have pushed the shell itself.
			return a, sh.Start()
		}
		return a, nil

	case MenuChoiceMsg:
		if a.busy {
			return a, nil
		}
		switch msg.Entry.Action {
		case ActionSettings:
			return a, a.pushCmd(KindSettings)
		case ActionPopup:
			return a, a.pushCmd(KindPopup)
		case ActionShell:
			return a, a.transitionCmd(ModeSession)
		case ActionQuit:
			return a, tea.Quit
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		for _, inst := range a.nav.Views() {
			if in, ok := inst.(Interactor); ok {
				in.Handle(msg)
			}
		}
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	switch msg.String() {
	case "ctrl+q":
		return a, tea.Quit
	case "q", "ctrl+c":
		// Quit only from the bare menu; everywhere else the key belongs
		// to the top view (the shell in particular needs both).
		if _, onMenu := a.nav.Top().(*MenuView); onMenu {
			return a, tea.Quit
		}
	case "esc":
		if a.nav.Depth() > 1 {
			return a, a.popCmd()
		}
		if cur := a.nav.CurrentMode(); cur != nil && cur.Name() == ModeSession {
			return a, a.transitionCmd(ModeMenu)
		}
		return a, nil
	}
	return a, a.forward(msg)
}

// forward hands a message to the interactive top view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.busy {
		return nil
	}
	top := a.nav.Top()
	if top == nil || !top.Interactive() {
		return nil
	}
	in, ok := top.(Interactor)
	if !ok {
		return nil
	}
	cmd := in.Handle(msg)
	a.refresh()
	return cmd
}

func (a *App) pushCmd(kind view.Kind) tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.opTimeout)
		defer cancel()
		inst, err := a.nav.Push(ctx, kind, nil)
		return navDoneMsg{op: "push", inst: inst, err: err}
	}
}

func (a *App) popCmd() tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.opTimeout)
		defer cancel()
		inst, err := a.nav.Pop(ctx)
		return navDoneMsg{op: "pop", inst: inst, err: err}
	}
}

func (a *App) transitionCmd(mode string) tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.opTimeout)
		defer cancel()
		err := a.nav.TransitionTo(ctx, mode)
		return navDoneMsg{op: "transition:" + mode, err: err}
	}
}

// refresh rebuilds the composited stack frame. Only called between
// operations, when the coordinator is quiescent.
func (a *App) refresh() {
	views := a.nav.Views()
	parts := make([]string, 0, len(views))
	for _, inst := range views {
		if !inst.Visible() {
			continue
		}
		r, ok := inst.(Renderable)
		if !ok {
			continue
		}
		parts = append(parts, r.Render())
	}
	a.body = lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	status := "working"
	if !a.busy {
		mode := "-"
		if cur := a.nav.CurrentMode(); cur != nil {
			mode = cur.Name()
		}
		status = fmt.Sprintf("mode: %s  depth: %d", mode, a.nav.Depth())
	}
	b.WriteString(styles.Status.Render(status))
	b.WriteString("\n\n")

	if a.busy {
		b.WriteString(a.spin.View())
		b.WriteString(styles.Dimmed.Render(" working"))
	} else {
		b.WriteString(a.body)
	}
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(styles.Selected.Render("error: " + a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(styles.Hint.Render("esc: back  ctrl+q: quit"))
	return b.String()
}
