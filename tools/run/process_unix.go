//go:build unix

package run

import (
	"os/exec"
	"syscall"
)

// The emulator gets its own process group, so that interrupting it also
// stops the processes it spawned.
func processGroupEnable(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func processGroupKill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
}
