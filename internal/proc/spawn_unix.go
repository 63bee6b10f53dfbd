//go:build !windows

package proc

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

// configureSysProcAttr places the child in a new process group with itself
// as leader. Foreground children additionally take ownership of the
// controlling terminal before exec, so the terminal-generated signals reach
// the job instead of the shell.
func configureSysProcAttr(cmd *exec.Cmd, term Terminal, foreground bool) {
	attr := &unix.SysProcAttr{Setpgid: true}
	if foreground && term.Interactive() {
		attr.Foreground = true
		attr.Ctty = term.Fd()
	}
	cmd.SysProcAttr = attr
}

// killGroup delivers sig to every member of the process group.
func killGroup(pgid int, sig unix.Signal) error {
	return unix.Kill(-pgid, sig)
}

// wait4 is the production wait primitive.
func wait4(pid int, ws *unix.WaitStatus, options int) (int, error) {
	return unix.Wait4(pid, ws, options, nil)
}
