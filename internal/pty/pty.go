// Package pty wraps pseudo-terminal spawning behind a small interface so
// views that host a live shell can be tested without forking processes.
package pty

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is the terminal geometry in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and resizes a PTY-backed process.
type Runner interface {
	Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// Creack implements Runner with github.com/creack/pty.
type Creack struct{}

var _ Runner = (*Creack)(nil)

// Start spawns cmd in a PTY of the given size. Closing the returned
// ReadWriteCloser terminates the session.
func (Creack) Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	return pty.StartWithSize(cmd, ws)
}

// Resize adjusts the PTY geometry. A no-op when rwc is not the *os.File
// handed out by Start.
func (Creack) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
