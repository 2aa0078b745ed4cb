package run

import (
	"io"
	"os"
	"os/exec"
)

// pipeProcess reads the emulator's stdout through a pipe.
type pipeProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func newPipeProcess(args []string) (*pipeProcess, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	processGroupEnable(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	return &pipeProcess{cmd, stdout}, nil
}

func (p *pipeProcess) Start() error          { return p.cmd.Start() }
func (p *pipeProcess) Wait() error           { return p.cmd.Wait() }
func (p *pipeProcess) Output() io.ReadCloser { return p.stdout }
func (p *pipeProcess) Kill() error           { return processGroupKill(p.cmd) }
