//go:build !windows

package remux

import (
	"os/exec"
	"syscall"
)

// sysProcAttr puts the muxer in its own process group so that a timeout
// takes down every child it spawned.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
