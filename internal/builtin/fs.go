package builtin

import (
	"fmt"
	"os"
)

// The filesystem builtins are thin wrappers over single library calls.
// Failures are target-resource errors: reported and recoverable.

func changeDir(env *Env, argv []string) {
	if len(argv) < 2 {
		fmt.Fprintln(env.Stderr, "cd: syntax error")
		return
	}
	if err := os.Chdir(argv[1]); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %v\n", err)
	}
}

func makeLink(env *Env, argv []string) {
	if len(argv) < 3 {
		fmt.Fprintln(env.Stderr, "ln: syntax error")
		return
	}
	if err := os.Link(argv[1], argv[2]); err != nil {
		fmt.Fprintf(env.Stderr, "ln: %v\n", err)
	}
}

func removeFile(env *Env, argv []string) {
	if len(argv) < 2 {
		fmt.Fprintln(env.Stderr, "rm: syntax error")
		return
	}
	if err := os.Remove(argv[1]); err != nil {
		fmt.Fprintf(env.Stderr, "rm: %v\n", err)
	}
}
