package demo

import (
	"bytes"
	"io"
	"os/exec"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"navkit/internal/pty"
	"navkit/internal/view"
)

// ShellOutputMsg carries bytes read from the pty for display.
type ShellOutputMsg struct {
	Data []byte
}

// ShellModel configures the spawned shell.
type ShellModel struct {
	WorkDir string
	Shell   string
}

func (m *ShellModel) Dispose() {}

const (
	defaultShellCols = 70
	defaultShellRows = 18
)

// ShellView is a pty-backed view that spawns a shell and passes through
// stdin/stdout. Unlike the other demo views it owns a real process, so it
// implements Destroyer and drops the process on release rather than keeping
// it alive in the pool.
type ShellView struct {
	view.Base
	runner   pty.Runner
	ptmx     io.ReadWriteCloser
	content  *bytes.Buffer
	viewport viewport.Model
	outputCh chan []byte
}

var (
	_ Renderable     = (*ShellView)(nil)
	_ Interactor     = (*ShellView)(nil)
	_ view.Poolable  = (*ShellView)(nil)
	_ view.Destroyer = (*ShellView)(nil)
)

// NewShellView creates an unbound shell view over runner.
func NewShellView(runner pty.Runner) *ShellView {
	vp := viewport.New(defaultShellCols, defaultShellRows)
	vp.Style = styles.Box
	return &ShellView{
		Base:     view.NewBase(KindShell),
		runner:   runner,
		content:  &bytes.Buffer{},
		viewport: vp,
	}
}

func (v *ShellView) shell() *ShellModel {
	m, _ := v.Model().(*ShellModel)
	return m
}

// Start spawns the shell process and begins pumping its output into the
// bubbletea loop. The app adapter calls this once the view is pushed; a
// spawn failure is rendered in place rather than failing the push.
func (v *ShellView) Start() tea.Cmd {
	if v.ptmx != nil {
		return v.waitForOutput()
	}
	m := v.shell()
	name := ""
	dir := "."
	if m != nil {
		name = m.Shell
		dir = m.WorkDir
	}
	if name == "" {
		name = "sh"
		if path, err := exec.LookPath("bash"); err == nil {
			name = path
		}
	}
	if dir == "" {
		dir = "."
	}
	cmd := exec.Command(name)
	cmd.Dir = dir

	sz := pty.Size{Rows: defaultShellRows, Cols: defaultShellCols}
	ptmx, err := v.runner.Start(cmd, sz)
	if err != nil {
		v.content.WriteString("failed to spawn shell: " + err.Error() + "\r\n")
		v.refreshViewport()
		return nil
	}
	v.ptmx = ptmx
	v.outputCh = make(chan []byte, 64)

	ch := v.outputCh
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				select {
				case ch <- cp:
				default:
					// Channel full, drop rather than block the reader.
				}
			}
			if err != nil {
				close(ch)
				return
			}
		}
	}()

	return v.waitForOutput()
}

func (v *ShellView) waitForOutput() tea.Cmd {
	ch := v.outputCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		data, ok := <-ch
		if !ok {
			return nil
		}
		return ShellOutputMsg{Data: data}
	}
}

// Handle implements Interactor.
func (v *ShellView) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShellOutputMsg:
		if v.ptmx != nil {
			v.content.Write(msg.Data)
			v.refreshViewport()
			v.viewport.GotoBottom()
		}
		return v.waitForOutput()
	case tea.KeyMsg:
		if v.ptmx != nil {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				v.ptmx.Write(b)
			}
		}
		return v.waitForOutput()
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		h := msg.Height/2 + 4
		if w < 40 {
			w = 40
		}
		if h < 12 {
			h = 12
		}
		v.viewport.Width = w
		v.viewport.Height = h
		if v.ptmx != nil {
			v.runner.Resize(v.ptmx, pty.Size{Rows: uint16(h), Cols: uint16(w)})
		}
		v.refreshViewport()
		return v.waitForOutput()
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return tea.Batch(cmd, v.waitForOutput())
}

// Render implements Renderable.
func (v *ShellView) Render() string {
	header := styles.Title.Render("Shell") + styles.Dimmed.Render("  esc: leave session")
	return header + "\n" + v.viewport.View()
}

func (v *ShellView) refreshViewport() {
	v.viewport.SetContent(v.content.String())
}

// OnAcquired clears whatever a previous session left in the viewport.
func (v *ShellView) OnAcquired() {
	v.content.Reset()
	v.refreshViewport()
}

// OnReleased drops the process. A pooled shell must not keep a live pty;
// the next acquisition starts fresh.
func (v *ShellView) OnReleased() {
	v.closeProcess()
}

// Destroy implements view.Destroyer.
func (v *ShellView) Destroy() {
	v.closeProcess()
}

func (v *ShellView) closeProcess() {
	if v.ptmx == nil {
		return
	}
	v.ptmx.Close()
	v.ptmx = nil
	v.outputCh = nil
	v.content.Reset()
}

// keyToPTYBytes converts a bubbletea key message to the bytes a pty expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}
