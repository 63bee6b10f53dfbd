package jobs

import "golang.org/x/sys/unix"

// Outcome classifies a single child-status report.
type Outcome int

const (
	// Exited means the process terminated normally.
	Exited Outcome = iota
	// Signaled means the process was terminated by a signal.
	Signaled
	// Stopped means the process was suspended by a signal.
	Stopped
	// Continued means a stopped process was resumed.
	Continued
)

// Status is the semantic form of one raw wait status. It is consumed
// immediately by the reaper or the foreground wait path and never persisted.
type Status struct {
	Outcome Outcome
	// Code is the exit status when Outcome is Exited.
	Code int
	// Signal is the signal number when Outcome is Signaled or Stopped.
	Signal int
}

// Translate maps a raw OS wait status into a Status. It is a pure function:
// the same raw status always yields the same result, which keeps the
// status-word bit testing verifiable independently of process control.
func Translate(ws unix.WaitStatus) Status {
	switch {
	case ws.Exited():
		return Status{Outcome: Exited, Code: ws.ExitStatus()}
	case ws.Signaled():
		return Status{Outcome: Signaled, Signal: int(ws.Signal())}
	case ws.Stopped():
		return Status{Outcome: Stopped, Signal: int(ws.StopSignal())}
	case ws.Continued():
		return Status{Outcome: Continued}
	default:
		// Unreachable for statuses produced by wait4; treated as a normal
		// exit so callers never observe an unclassified report.
		return Status{Outcome: Exited, Code: ws.ExitStatus()}
	}
}
