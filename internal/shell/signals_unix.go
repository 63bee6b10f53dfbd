//go:build !windows

package shell

import (
	"os"
	"os/signal"
	"syscall"
)

// holdSignals keeps terminal-generated signals from killing or stopping the
// shell itself. They are held with runtime handlers rather than SIG_IGN so
// spawned children exec with default dispositions, and simply discarded: the
// foreground job owns the terminal while it runs, so the kernel routes
// keyboard signals to it directly. SIGTTOU is in the set because the shell
// reclaims the terminal and prints notifications while a stopped job still
// holds it, both of which would otherwise stop the shell.
func (s *Shell) holdSignals() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTSTP, syscall.SIGTTOU)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
