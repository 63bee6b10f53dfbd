package proc

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/Paintersrp/gosh/internal/jobs"
)

// Reaper drains pending child-status reports without blocking, updates the
// registry and prints notifications for background and stopped jobs. It runs
// once per prompt cycle; the operating system coalesces reports between
// drains, so each drain loops until nothing is pending.
type Reaper struct {
	registry      *jobs.Registry
	out           io.Writer
	wait          WaitFunc
	notifyResumed bool
	log           zerolog.Logger
}

// ReaperOption customises a Reaper.
type ReaperOption func(*Reaper)

// WithReaperWait replaces the non-blocking wait primitive.
func WithReaperWait(fn WaitFunc) ReaperOption {
	return func(r *Reaper) { r.wait = fn }
}

// WithResumeNotifications controls whether externally continued jobs are
// reported. Resumes issued by the shell's own fg/bg are always silent.
func WithResumeNotifications(enabled bool) ReaperOption {
	return func(r *Reaper) { r.notifyResumed = enabled }
}

// WithReaperLogger attaches a diagnostic logger.
func WithReaperLogger(log zerolog.Logger) ReaperOption {
	return func(r *Reaper) { r.log = log }
}

// NewReaper wires a reaper to the shared registry. Notifications go to out.
func NewReaper(reg *jobs.Registry, out io.Writer, opts ...ReaperOption) *Reaper {
	r := &Reaper{
		registry:      reg,
		out:           out,
		wait:          wait4,
		notifyResumed: true,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Drain collects every pending status change without waiting. Calling Drain
// again immediately afterwards mutates nothing and prints nothing.
func (r *Reaper) Drain() {
	for {
		var ws unix.WaitStatus
		pid, err := r.wait(-1, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || pid <= 0 {
			// ECHILD means no children remain; pid 0 means the remaining
			// children have no pending report. Either way the drain is done.
			return
		}
		r.apply(pid, jobs.Translate(ws))
	}
}

// apply folds one status report into the registry. Children are process
// group leaders, so the reported pid is the group id.
func (r *Reaper) apply(pgid int, st jobs.Status) {
	switch st.Outcome {
	case jobs.Exited:
		id, registered := r.registry.JobIDByPGID(pgid)
		r.registry.RemoveByPGID(pgid)
		if registered {
			fmt.Fprintf(r.out, "[%d] (%d) terminated with exit status %d\n", id, pgid, st.Code)
		}
		r.log.Debug().Int("pgid", pgid).Int("code", st.Code).Bool("registered", registered).Msg("reaped exit")
	case jobs.Signaled:
		id, registered := r.registry.JobIDByPGID(pgid)
		r.registry.RemoveByPGID(pgid)
		if registered {
			fmt.Fprintf(r.out, "[%d] (%d) terminated by signal %d\n", id, pgid, st.Signal)
		}
		r.log.Debug().Int("pgid", pgid).Int("signal", st.Signal).Bool("registered", registered).Msg("reaped signal termination")
	case jobs.Stopped:
		id, registered := r.registry.JobIDByPGID(pgid)
		if registered {
			r.registry.UpdateStateByPGID(pgid, jobs.StateStopped)
		} else {
			// A foreground-suspended process reaped here was never
			// registered; it becomes a job now, same id policy as the
			// foreground wait path.
			id = r.registry.Add(pgid, jobs.StateStopped, "")
		}
		fmt.Fprintf(r.out, "[%d] (%d) suspended by signal %d\n", id, pgid, st.Signal)
		r.log.Debug().Int("job", id).Int("pgid", pgid).Int("signal", st.Signal).Msg("job stopped")
	case jobs.Continued:
		job, registered := r.registry.LookupByPGID(pgid)
		if !registered || job.State != jobs.StateStopped {
			// Resumes initiated by fg/bg mark the job Running before this
			// report surfaces, so reporting again here would double up.
			return
		}
		r.registry.UpdateStateByPGID(pgid, jobs.StateRunning)
		if r.notifyResumed {
			fmt.Fprintf(r.out, "[%d] (%d) resumed\n", job.ID, pgid)
		}
		r.log.Debug().Int("job", job.ID).Int("pgid", pgid).Msg("job resumed externally")
	}
}
