package builtin

import (
	"fmt"
	"strconv"
	"strings"
)

func listJobs(env *Env) {
	for _, job := range env.Registry.List() {
		fmt.Fprintf(env.Stdout, "[%d] (%d) %s\n", job.ID, job.PGID, job.State)
	}
}

// parseJobRef resolves a %N argument to a job id. Malformed references are
// syntax errors with no side effects; %0 is well formed and simply never
// resolves, since ids start at 1.
func parseJobRef(arg string) (int, bool) {
	if !strings.HasPrefix(arg, "%") {
		return 0, false
	}
	id, err := strconv.Atoi(arg[1:])
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func foreground(env *Env, argv []string) error {
	if len(argv) != 2 {
		fmt.Fprintln(env.Stderr, "fg: syntax error")
		return nil
	}
	id, ok := parseJobRef(argv[1])
	if !ok {
		fmt.Fprintln(env.Stderr, "fg: syntax error")
		return nil
	}
	return env.Supervisor.ContinueForeground(id)
}

func background(env *Env, argv []string) error {
	if len(argv) != 2 {
		fmt.Fprintln(env.Stderr, "bg: syntax error")
		return nil
	}
	id, ok := parseJobRef(argv[1])
	if !ok {
		fmt.Fprintln(env.Stderr, "bg: syntax error")
		return nil
	}
	return env.Supervisor.ContinueBackground(id)
}
