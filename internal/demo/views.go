// Package demo contains the concrete views, modes and bubbletea glue for
// the navkit demo terminal app. The coordinator packages (pool, factory,
// nav) know nothing about rendering; this package is where view instances
// grow a drawable surface and where key presses become navigator calls.
package demo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"navkit/internal/loader"
	"navkit/internal/pool"
	"navkit/internal/pty"
	"navkit/internal/resolve"
	"navkit/internal/view"
)

// View kinds shipped with the demo.
const (
	KindMenu     view.Kind = "menu"
	KindSettings view.Kind = "settings"
	KindPopup    view.Kind = "popup"
	KindShell    view.Kind = "shell"
)

// Renderable is the drawing contract demo views add on top of the
// lifecycle contract. The app adapter composites Render output bottom-up.
type Renderable interface {
	view.Instance
	Render() string
}

// Interactor is the optional input hook. The adapter forwards messages
// only to the interactive top view.
type Interactor interface {
	Handle(msg tea.Msg) tea.Cmd
}

// MenuChoiceMsg is emitted when the user activates a menu entry.
type MenuChoiceMsg struct {
	Entry MenuEntry
}

// MenuEntry is one activatable row in the menu.
type MenuEntry struct {
	Title  string
	Action string
}

// Menu actions understood by the app adapter.
const (
	ActionSettings = "settings"
	ActionPopup    = "popup"
	ActionShell    = "shell"
	ActionQuit     = "quit"
)

// MenuModel is the data behind the menu view.
type MenuModel struct {
	Title   string
	Entries []MenuEntry
}

func (m *MenuModel) Dispose() {}

// DefaultMenu returns the entry set the demo boots with.
func DefaultMenu() *MenuModel {
	return &MenuModel{
		Title: "navkit demo",
		Entries: []MenuEntry{
			{Title: "Settings", Action: ActionSettings},
			{Title: "Popup", Action: ActionPopup},
			{Title: "Shell session", Action: ActionShell},
			{Title: "Quit", Action: ActionQuit},
		},
	}
}

// MenuView renders a MenuModel with a movable cursor.
type MenuView struct {
	view.Base
	cursor int
}

var (
	_ Renderable    = (*MenuView)(nil)
	_ Interactor    = (*MenuView)(nil)
	_ view.Poolable = (*MenuView)(nil)
)

// NewMenuView creates an unbound menu view.
func NewMenuView() *MenuView {
	return &MenuView{Base: view.NewBase(KindMenu)}
}

// OnAcquired resets cursor state left over from a previous use.
func (v *MenuView) OnAcquired() { v.cursor = 0 }

func (v *MenuView) OnReleased() {}

func (v *MenuView) menu() *MenuModel {
	m, _ := v.Model().(*MenuModel)
	return m
}

// Handle implements Interactor.
func (v *MenuView) Handle(msg tea.Msg) tea.Cmd {
	m := v.menu()
	if m == nil {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(m.Entries)-1 {
			v.cursor++
		}
	case "enter":
		entry := m.Entries[v.cursor]
		return func() tea.Msg { return MenuChoiceMsg{Entry: entry} }
	}
	return nil
}

// Render implements Renderable.
func (v *MenuView) Render() string {
	m := v.menu()
	if m == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.Title))
	b.WriteString("\n\n")
	for i, e := range m.Entries {
		if i == v.cursor && v.Interactive() {
			b.WriteString(styles.Selected.Render("> " + e.Title))
		} else {
			b.WriteString(styles.Normal.Render("  " + e.Title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SettingsModel holds toggleable demo options.
type SettingsModel struct {
	Options []SettingsOption
}

// SettingsOption is one named on/off switch.
type SettingsOption struct {
	Name    string
	Enabled bool
}

func (m *SettingsModel) Dispose() {}

// DefaultSettings returns the option set the settings view boots with.
func DefaultSettings() *SettingsModel {
	return &SettingsModel{
		Options: []SettingsOption{
			{Name: "Transitions", Enabled: true},
			{Name: "Pool warmup", Enabled: false},
			{Name: "Tracing", Enabled: false},
		},
	}
}

// SettingsView renders a SettingsModel as a toggle list.
type SettingsView struct {
	view.Base
	cursor int
}

var (
	_ Renderable    = (*SettingsView)(nil)
	_ Interactor    = (*SettingsView)(nil)
	_ view.Poolable = (*SettingsView)(nil)
)

// NewSettingsView creates an unbound settings view.
func NewSettingsView() *SettingsView {
	return &SettingsView{Base: view.NewBase(KindSettings)}
}

func (v *SettingsView) OnAcquired() { v.cursor = 0 }

func (v *SettingsView) OnReleased() {}

func (v *SettingsView) settings() *SettingsModel {
	m, _ := v.Model().(*SettingsModel)
	return m
}

// Handle implements Interactor.
func (v *SettingsView) Handle(msg tea.Msg) tea.Cmd {
	m := v.settings()
	if m == nil {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(m.Options)-1 {
			v.cursor++
		}
	case " ", "enter":
		m.Options[v.cursor].Enabled = !m.Options[v.cursor].Enabled
	}
	return nil
}

// Render implements Renderable.
func (v *SettingsView) Render() string {
	m := v.settings()
	if m == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render("Settings"))
	b.WriteString("\n\n")
	for i, opt := range m.Options {
		box := "[ ]"
		if opt.Enabled {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, opt.Name)
		if i == v.cursor && v.Interactive() {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString(styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Hint.Render("space: toggle  esc: back"))
	return styles.Box.Render(b.String())
}

// PopupModel is the message behind a popup view.
type PopupModel struct {
	Title   string
	Message string
}

func (m *PopupModel) Dispose() {}

// PopupView renders a PopupModel as a bordered overlay box.
type PopupView struct {
	view.Base
}

var (
	_ Renderable    = (*PopupView)(nil)
	_ view.Poolable = (*PopupView)(nil)
)

// NewPopupView creates an unbound popup view.
func NewPopupView() *PopupView {
	return &PopupView{Base: view.NewBase(KindPopup)}
}

func (v *PopupView) OnAcquired() {}

func (v *PopupView) OnReleased() {}

// Render implements Renderable.
func (v *PopupView) Render() string {
	m, _ := v.Model().(*PopupModel)
	if m == nil {
		return ""
	}
	body := styles.Title.Render(m.Title) + "\n\n" +
		styles.Normal.Render(m.Message) + "\n\n" +
		styles.Hint.Render("esc: dismiss")
	return styles.Box.Render(body)
}

// RegisterAll wires the demo kinds into the coordinator: one template per
// kind in the loader, one pooled registration per kind, and a default
// model provider per kind so views can be pushed without a model. maxIdle
// bounds the idle pool for menu, settings and popup; shell instances hold
// a live process, so at most one is kept warm.
func RegisterAll(p *pool.Pool, templates *loader.Registry, models *resolve.Registry, runner pty.Runner, maxIdle int) error {
	templates.AddTemplate(string(KindMenu), view.TemplateFunc(KindMenu, func() (view.Instance, error) {
		return NewMenuView(), nil
	}))
	templates.AddTemplate(string(KindSettings), view.TemplateFunc(KindSettings, func() (view.Instance, error) {
		return NewSettingsView(), nil
	}))
	templates.AddTemplate(string(KindPopup), view.TemplateFunc(KindPopup, func() (view.Instance, error) {
		return NewPopupView(), nil
	}))
	templates.AddTemplate(string(KindShell), view.TemplateFunc(KindShell, func() (view.Instance, error) {
		return NewShellView(runner), nil
	}))

	if err := pool.Register[*MenuView](p, KindMenu, string(KindMenu), maxIdle); err != nil {
		return err
	}
	if err := pool.Register[*SettingsView](p, KindSettings, string(KindSettings), maxIdle); err != nil {
		return err
	}
	if err := pool.Register[*PopupView](p, KindPopup, string(KindPopup), maxIdle); err != nil {
		return err
	}
	if err := pool.Register[*ShellView](p, KindShell, string(KindShell), 1); err != nil {
		return err
	}

	models.Add(KindMenu, func() (view.Model, error) { return DefaultMenu(), nil })
	models.Add(KindSettings, func() (view.Model, error) { return DefaultSettings(), nil })
	models.Add(KindPopup, func() (view.Model, error) {
		return &PopupModel{Title: "Popup", Message: "Pushed on top of the stack."}, nil
	})
	models.Add(KindShell, func() (view.Model, error) { return &ShellModel{}, nil })
	return nil
}
