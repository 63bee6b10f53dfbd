// Package shell hosts the read-eval loop and the dispatcher that routes
// parsed commands to builtins, the foreground supervisor or the background
// launcher.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/gosh/internal/builtin"
	"github.com/Paintersrp/gosh/internal/config"
	"github.com/Paintersrp/gosh/internal/jobs"
	"github.com/Paintersrp/gosh/internal/parse"
	"github.com/Paintersrp/gosh/internal/proc"
)

// Shell owns the job registry and the per-prompt control flow. All job state
// is mutated from this single control thread; the only suspension point is
// the blocking wait during foreground execution.
type Shell struct {
	cfg      *config.Config
	registry *jobs.Registry

	in   io.Reader
	out  io.Writer
	diag io.Writer

	terminal proc.Terminal
	wait     proc.WaitFunc
	kill     proc.KillFunc
	log      zerolog.Logger

	reaper     *proc.Reaper
	supervisor *proc.Supervisor
	env        *builtin.Env
}

// Option customises a Shell.
type Option func(*Shell)

// WithInput replaces the command-line source, normally os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = r }
}

// WithOutput replaces the notification stream, normally os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithStderr replaces the diagnostic stream.
func WithStderr(w io.Writer) Option {
	return func(s *Shell) { s.diag = w }
}

// WithTerminal replaces the terminal controller.
func WithTerminal(t proc.Terminal) Option {
	return func(s *Shell) { s.terminal = t }
}

// WithWait replaces the wait primitive used by the reaper and supervisor.
func WithWait(fn proc.WaitFunc) Option {
	return func(s *Shell) { s.wait = fn }
}

// WithKill replaces the group-signal primitive.
func WithKill(fn proc.KillFunc) Option {
	return func(s *Shell) { s.kill = fn }
}

// WithLogger attaches a diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// New assembles a shell around the provided configuration.
func New(cfg *config.Config, opts ...Option) *Shell {
	cfg.ApplyDefaults()
	s := &Shell{
		cfg:      cfg,
		registry: jobs.NewRegistry(),
		in:       os.Stdin,
		out:      os.Stdout,
		diag:     os.Stderr,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.terminal == nil {
		s.terminal = proc.NewTTY(os.Stdin)
	}

	supOpts := []proc.Option{proc.WithLogger(s.log)}
	if s.wait != nil {
		supOpts = append(supOpts, proc.WithWait(s.wait))
	}
	if s.kill != nil {
		supOpts = append(supOpts, proc.WithKill(s.kill))
	}
	s.supervisor = proc.NewSupervisor(s.registry, s.terminal, s.out, s.diag, supOpts...)

	reapOpts := []proc.ReaperOption{
		proc.WithReaperLogger(s.log),
		proc.WithResumeNotifications(*cfg.NotifyResumed),
	}
	if s.wait != nil {
		reapOpts = append(reapOpts, proc.WithReaperWait(s.wait))
	}
	s.reaper = proc.NewReaper(s.registry, s.out, reapOpts...)

	s.env = &builtin.Env{
		Registry:   s.registry,
		Supervisor: s.supervisor,
		Stdout:     s.out,
		Stderr:     s.diag,
	}
	return s
}

// Registry exposes the job table, mainly for tests.
func (s *Shell) Registry() *jobs.Registry {
	return s.registry
}

// Run drives the read-eval loop until end of input, the exit builtin, or a
// fatal internal error. Pending job notifications are drained before every
// prompt so they are never interleaved with partial prompt output. The
// registry is released on every exit path.
func (s *Shell) Run() error {
	restore := s.holdSignals()
	defer restore()
	defer s.registry.Clear()

	prompt := s.promptString()
	reader := bufio.NewReader(s.in)
	for {
		s.reaper.Drain()
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)

		if line != "" {
			if derr := s.dispatch(line); derr != nil {
				if errors.Is(derr, builtin.ErrExit) {
					return nil
				}
				return derr
			}
		}
		if atEOF {
			return nil
		}
	}
}

func (s *Shell) dispatch(line string) error {
	cmd, err := parse.Parse(line)
	if err != nil {
		fmt.Fprintln(s.diag, err)
		return nil
	}
	if cmd == nil {
		return nil
	}

	// A command word containing a slash always names an external program,
	// even when its basename matches a builtin: "/bin/ln" must exec, not
	// call the ln builtin.
	if !strings.ContainsRune(cmd.Path, '/') {
		handled, err := builtin.Handle(s.env, cmd.Argv)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	if cmd.Background {
		return s.supervisor.RunBackground(cmd)
	}
	return s.supervisor.RunForeground(cmd)
}

// promptString returns the prompt to print, or "" when prompting is off or
// input is not interactive.
func (s *Shell) promptString() string {
	if !*s.cfg.ShowPrompt || !s.terminal.Interactive() {
		return ""
	}
	return s.cfg.Prompt
}
