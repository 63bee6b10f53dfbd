// Package proc owns process creation, terminal arbitration and child-status
// collection for the shell.
//
// Every spawned command is the leader of a fresh process group, so signals
// and terminal control reach the whole command as a unit. Foreground launches
// hand the controlling terminal to the child's group before exec and the
// shell reclaims it on every return path; a leaked terminal assignment would
// deadlock the next prompt read. Background launches never touch terminal
// ownership and are observed later by the reaper, which drains pending
// child-status reports without blocking once per prompt cycle.
//
// These guarantees rely on POSIX job-control semantics and are only provided
// on Unix-like hosts. There is no Windows port.
package proc
