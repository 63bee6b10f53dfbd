package jobs

// State describes whether a tracked process group is currently scheduled to
// run or has been stopped by a signal.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Job is one process group spawned by the shell and not yet reaped to
// completion. Only background jobs and stopped foreground jobs are tracked;
// a foreground job that runs to completion never appears here.
type Job struct {
	ID      int
	PGID    int
	State   State
	Command string
}

// Registry is an insertion-ordered table of jobs keyed by process group.
// The shell's control flow is single threaded, so the registry performs no
// locking; every mutation happens between two prompt reads.
type Registry struct {
	entries []*Job
	nextID  int
}

// NewRegistry returns an empty registry. Job ids start at 1 and are never
// reused within a shell session.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Add inserts a new job for the given process group and returns its assigned
// id. The caller guarantees the pgid is not already registered; a pgid is
// only added once, at spawn or first-stop time.
func (r *Registry) Add(pgid int, state State, command string) int {
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, &Job{ID: id, PGID: pgid, State: state, Command: command})
	return id
}

// TakeNextID consumes and returns the next job id without inserting an entry.
// Used when a never-registered foreground job is killed by a signal and a
// display id is needed for the termination notice; consuming keeps displayed
// ids strictly increasing.
func (r *Registry) TakeNextID() int {
	id := r.nextID
	r.nextID++
	return id
}

// RemoveByPGID deletes the entry for the process group and reports whether
// one existed.
func (r *Registry) RemoveByPGID(pgid int) bool {
	for i, j := range r.entries {
		if j.PGID == pgid {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateStateByPGID transitions the job's state and reports whether the pgid
// was registered.
func (r *Registry) UpdateStateByPGID(pgid int, state State) bool {
	for _, j := range r.entries {
		if j.PGID == pgid {
			j.State = state
			return true
		}
	}
	return false
}

// JobIDByPGID resolves a process group to its job id.
func (r *Registry) JobIDByPGID(pgid int) (int, bool) {
	for _, j := range r.entries {
		if j.PGID == pgid {
			return j.ID, true
		}
	}
	return 0, false
}

// PGIDByJobID resolves a %N job reference to its process group.
func (r *Registry) PGIDByJobID(id int) (int, bool) {
	for _, j := range r.entries {
		if j.ID == id {
			return j.PGID, true
		}
	}
	return 0, false
}

// LookupByPGID returns a copy of the job for the process group.
func (r *Registry) LookupByPGID(pgid int) (Job, bool) {
	for _, j := range r.entries {
		if j.PGID == pgid {
			return *j, true
		}
	}
	return Job{}, false
}

// List returns the registered jobs in insertion order, oldest first.
func (r *Registry) List() []Job {
	out := make([]Job, len(r.entries))
	for i, j := range r.entries {
		out[i] = *j
	}
	return out
}

// Len reports the number of registered jobs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Clear drops every entry. Called on shell shutdown paths, not during
// steady-state operation.
func (r *Registry) Clear() {
	r.entries = nil
}
