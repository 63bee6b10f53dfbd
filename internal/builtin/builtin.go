// Package builtin implements the commands the shell executes in-process:
// the filesystem wrappers cd, ln and rm, the exit builtin, and the job
// control commands jobs, fg and bg.
package builtin

import (
	"errors"
	"io"

	"github.com/Paintersrp/gosh/internal/jobs"
	"github.com/Paintersrp/gosh/internal/proc"
)

// ErrExit is returned by Handle when the exit builtin runs; the caller
// shuts the shell down cleanly.
var ErrExit = errors.New("exit")

// Env carries the collaborators a builtin may touch.
type Env struct {
	Registry   *jobs.Registry
	Supervisor *proc.Supervisor
	Stdout     io.Writer
	Stderr     io.Writer
}

// Handle dispatches argv to a builtin. It reports whether argv named one;
// when it did not, the caller should execute argv as an external program.
// A non-nil error other than ErrExit is fatal to the shell.
func Handle(env *Env, argv []string) (bool, error) {
	if len(argv) == 0 {
		return false, nil
	}
	switch argv[0] {
	case "exit":
		return true, ErrExit
	case "cd":
		changeDir(env, argv)
	case "ln":
		makeLink(env, argv)
	case "rm":
		removeFile(env, argv)
	case "jobs":
		listJobs(env)
	case "fg":
		return true, foreground(env, argv)
	case "bg":
		return true, background(env, argv)
	default:
		return false, nil
	}
	return true, nil
}
