package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/Paintersrp/gosh/internal/jobs"
	"github.com/Paintersrp/gosh/internal/parse"
)

// WaitFunc is the wait primitive used to collect child-status reports.
// It mirrors wait4: pid selects which children to wait for, options carries
// WNOHANG/WUNTRACED/WCONTINUED.
type WaitFunc func(pid int, ws *unix.WaitStatus, options int) (int, error)

// KillFunc delivers a signal to a whole process group.
type KillFunc func(pgid int, sig unix.Signal) error

// Supervisor launches commands, arbitrates the terminal and settles
// foreground jobs. Errors it returns are fatal: they mean the shell can no
// longer guarantee consistent terminal or job bookkeeping.
type Supervisor struct {
	registry *jobs.Registry
	term     Terminal
	out      io.Writer
	diag     io.Writer
	wait     WaitFunc
	kill     KillFunc
	log      zerolog.Logger
}

// Option customises a Supervisor.
type Option func(*Supervisor)

// WithWait replaces the wait primitive.
func WithWait(fn WaitFunc) Option {
	return func(s *Supervisor) { s.wait = fn }
}

// WithKill replaces the group-signal primitive.
func WithKill(fn KillFunc) Option {
	return func(s *Supervisor) { s.kill = fn }
}

// WithLogger attaches a diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Supervisor) { s.log = log }
}

// NewSupervisor wires a supervisor to the shared registry and terminal.
// Notifications go to out, diagnostics to diag.
func NewSupervisor(reg *jobs.Registry, term Terminal, out, diag io.Writer, opts ...Option) *Supervisor {
	s := &Supervisor{
		registry: reg,
		term:     term,
		out:      out,
		diag:     diag,
		wait:     wait4,
		kill:     killGroup,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunForeground launches the command synchronously and blocks until it exits
// or stops, then restores the shell's terminal ownership. Launch failures
// are reported and recoverable; only wait or terminal failures are fatal.
func (s *Supervisor) RunForeground(c *parse.Command) error {
	cmd, err := s.command(c, true)
	if err != nil {
		fmt.Fprintln(s.diag, err)
		return nil
	}
	if err := cmd.Start(); err != nil {
		closeRedirections(cmd)
		fmt.Fprintln(s.diag, err)
		return nil
	}
	closeRedirections(cmd)

	pgid := cmd.Process.Pid
	s.log.Debug().Int("pgid", pgid).Str("command", commandText(c)).Msg("foreground launch")
	return s.waitForeground(pgid, commandText(c))
}

// RunBackground launches the command asynchronously: same child setup except
// the terminal stays with the shell. The job is registered as Running and
// control returns to the caller immediately; the reaper owns the rest of the
// job's lifecycle.
func (s *Supervisor) RunBackground(c *parse.Command) error {
	cmd, err := s.command(c, false)
	if err != nil {
		fmt.Fprintln(s.diag, err)
		return nil
	}
	if err := cmd.Start(); err != nil {
		closeRedirections(cmd)
		fmt.Fprintln(s.diag, err)
		return nil
	}
	closeRedirections(cmd)

	pgid := cmd.Process.Pid
	id := s.registry.Add(pgid, jobs.StateRunning, commandText(c))
	fmt.Fprintf(s.out, "[%d] (%d)\n", id, pgid)
	s.log.Debug().Int("job", id).Int("pgid", pgid).Str("command", commandText(c)).Msg("background launch")
	return nil
}

// ContinueForeground resumes a stopped or running job in the foreground:
// SIGCONT to the group, mark Running, hand over the terminal and block until
// the job exits or stops again.
func (s *Supervisor) ContinueForeground(jobID int) error {
	pgid, ok := s.registry.PGIDByJobID(jobID)
	if !ok {
		fmt.Fprintln(s.diag, "job not found")
		return nil
	}
	job, _ := s.registry.LookupByPGID(pgid)

	if err := s.kill(pgid, unix.SIGCONT); err != nil {
		fmt.Fprintf(s.diag, "fg: %v\n", err)
		return nil
	}
	s.registry.UpdateStateByPGID(pgid, jobs.StateRunning)
	if err := s.term.Give(pgid); err != nil {
		return fmt.Errorf("give terminal to process group %d: %w", pgid, err)
	}
	s.log.Debug().Int("job", jobID).Int("pgid", pgid).Msg("continue in foreground")
	return s.waitForeground(pgid, job.Command)
}

// ContinueBackground resumes a stopped job without touching the terminal and
// without waiting.
func (s *Supervisor) ContinueBackground(jobID int) error {
	pgid, ok := s.registry.PGIDByJobID(jobID)
	if !ok {
		fmt.Fprintln(s.diag, "job not found")
		return nil
	}
	if err := s.kill(pgid, unix.SIGCONT); err != nil {
		fmt.Fprintf(s.diag, "bg: %v\n", err)
		return nil
	}
	s.registry.UpdateStateByPGID(pgid, jobs.StateRunning)
	s.log.Debug().Int("job", jobID).Int("pgid", pgid).Msg("continue in background")
	return nil
}

// waitForeground blocks on the process group until it terminates or stops,
// interested in stop transitions as well (WUNTRACED, never WNOHANG). The
// shell's terminal ownership is restored on every return path.
func (s *Supervisor) waitForeground(pgid int, command string) (err error) {
	defer func() {
		if rerr := s.term.Reclaim(); rerr != nil && err == nil {
			err = fmt.Errorf("reclaim terminal: %w", rerr)
		}
	}()

	for {
		var ws unix.WaitStatus
		wpid, werr := s.wait(-pgid, &ws, unix.WUNTRACED)
		if errors.Is(werr, unix.EINTR) {
			continue
		}
		if werr != nil {
			return fmt.Errorf("wait on process group %d: %w", pgid, werr)
		}
		if wpid <= 0 {
			continue
		}

		st := jobs.Translate(ws)
		switch st.Outcome {
		case jobs.Stopped:
			id, registered := s.registry.JobIDByPGID(pgid)
			if registered {
				s.registry.UpdateStateByPGID(pgid, jobs.StateStopped)
			} else {
				id = s.registry.Add(pgid, jobs.StateStopped, command)
			}
			fmt.Fprintf(s.out, "[%d] (%d) suspended by signal %d\n", id, pgid, st.Signal)
			s.log.Debug().Int("job", id).Int("pgid", pgid).Int("signal", st.Signal).Msg("foreground job stopped")
			return nil
		case jobs.Signaled:
			id, registered := s.registry.JobIDByPGID(pgid)
			s.registry.RemoveByPGID(pgid)
			if !registered {
				id = s.registry.TakeNextID()
			}
			fmt.Fprintf(s.out, "[%d] (%d) terminated by signal %d\n", id, pgid, st.Signal)
			s.log.Debug().Int("job", id).Int("pgid", pgid).Int("signal", st.Signal).Msg("foreground job killed")
			return nil
		case jobs.Exited:
			// A synchronously waited job reports its outcome to the caller
			// through the exit code alone; nothing is printed.
			s.registry.RemoveByPGID(pgid)
			s.log.Debug().Int("pgid", pgid).Int("code", st.Code).Msg("foreground job exited")
			return nil
		default:
			// Continued reports are not requested here; ignore and keep
			// waiting.
		}
	}
}

// command builds the exec.Cmd for a parsed command: argument vector as
// resolved by the parser, redirection plan applied, process-group attributes
// set. Redirection targets are opened in the shell and handed to the child
// as its stdio, mirroring the close-then-open sequence a forked child would
// perform.
func (s *Supervisor) command(c *parse.Command, foreground bool) (*exec.Cmd, error) {
	cmd := exec.Command(c.Path)
	cmd.Args = append([]string(nil), c.Argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	var opened []*os.File
	fail := func(err error) (*exec.Cmd, error) {
		for _, f := range opened {
			f.Close()
		}
		return nil, err
	}

	if c.Redir.Input != "" {
		f, err := os.Open(c.Redir.Input)
		if err != nil {
			return fail(err)
		}
		opened = append(opened, f)
		cmd.Stdin = f
	}
	if c.Redir.Output != "" {
		f, err := os.OpenFile(c.Redir.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fail(err)
		}
		opened = append(opened, f)
		cmd.Stdout = f
	} else if c.Redir.Append != "" {
		f, err := os.OpenFile(c.Redir.Append, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fail(err)
		}
		opened = append(opened, f)
		cmd.Stdout = f
	}

	configureSysProcAttr(cmd, s.term, foreground)
	return cmd, nil
}

// closeRedirections releases the shell's copies of any redirection files
// once the child owns its own descriptors.
func closeRedirections(cmd *exec.Cmd) {
	if f, ok := cmd.Stdin.(*os.File); ok && f != os.Stdin {
		f.Close()
	}
	if f, ok := cmd.Stdout.(*os.File); ok && f != os.Stdout {
		f.Close()
	}
}

func commandText(c *parse.Command) string {
	return strings.Join(c.Argv, " ")
}
