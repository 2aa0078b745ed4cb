package run

import (
	"io"
	"os"

	"github.com/aymanbagabas/go-pty"
)

// ptyProcess runs the emulator on a pseudo terminal, for emulators that
// buffer their output when it's not a terminal.
type ptyProcess struct {
	pty pty.Pty
	cmd *pty.Cmd
}

func newPtyProcess(args []string) (*ptyProcess, error) {
	p, err := pty.New()
	if err != nil {
		return nil, err
	}
	return &ptyProcess{p, p.Command(args[0], args[1:]...)}, nil
}

func (p *ptyProcess) Start() error          { return p.cmd.Start() }
func (p *ptyProcess) Output() io.ReadCloser { return p.pty }

func (p *ptyProcess) Wait() error {
	defer p.pty.Close()
	return p.cmd.Wait()
}

func (p *ptyProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Signal(os.Interrupt)
}
