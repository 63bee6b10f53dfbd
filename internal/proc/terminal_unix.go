//go:build !windows

package proc

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal arbitrates ownership of the controlling terminal between the
// shell and its foreground jobs.
type Terminal interface {
	// Interactive reports whether a controlling terminal is attached.
	Interactive() bool
	// Fd returns the descriptor of the controlling terminal.
	Fd() int
	// Give makes pgid the foreground process group of the terminal.
	Give(pgid int) error
	// Reclaim restores the shell's own process group as the foreground
	// group. Must succeed on every path back to the prompt.
	Reclaim() error
}

// TTY is the real controlling-terminal implementation. When the provided
// file is not a terminal every operation is a no-op, which lets the shell
// run under pipes and in tests without job control.
type TTY struct {
	fd          int
	shellPgrp   int
	interactive bool
}

// NewTTY wraps the shell's input stream, normally os.Stdin.
func NewTTY(f *os.File) *TTY {
	t := &TTY{fd: int(f.Fd())}
	if term.IsTerminal(t.fd) {
		t.interactive = true
		t.shellPgrp = unix.Getpgrp()
	}
	return t
}

func (t *TTY) Interactive() bool { return t.interactive }

func (t *TTY) Fd() int { return t.fd }

func (t *TTY) Give(pgid int) error {
	if !t.interactive {
		return nil
	}
	// The shell owns the terminal when it hands it away, so no SIGTTOU can
	// be raised here.
	return tcsetpgrp(t.fd, pgid)
}

func (t *TTY) Reclaim() error {
	if !t.interactive {
		return nil
	}
	// Taking the terminal back happens while the shell sits in the
	// background group, which raises SIGTTOU. The shell holds SIGTTOU for
	// its whole lifetime, so the call proceeds instead of stopping it.
	return tcsetpgrp(t.fd, t.shellPgrp)
}

func tcsetpgrp(fd, pgid int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}
