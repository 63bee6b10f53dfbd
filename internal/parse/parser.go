// Package parse turns a raw command line into the separated form the
// dispatcher consumes: an argument vector, a redirection plan and a
// background flag. Words are split on spaces and tabs; the parser performs
// no globbing, quoting or variable expansion.
package parse

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	errNoInputFile      = errors.New("syntax error: no input file")
	errNoOutputFile     = errors.New("syntax error: no output file")
	errFileIsRedirect   = errors.New("syntax error: input file is a redirection symbol")
	errMultipleInputs   = errors.New("syntax error: multiple input files")
	errMultipleOutputs  = errors.New("syntax error: multiple output files")
	errRedirectsOnly    = errors.New("error: redirects with no command")
	errBackgroundAmpPos = errors.New("syntax error: & must be the last word")
)

// Redirection is the per-command redirection plan. Output and Append are
// mutually exclusive; empty strings mean the stream is untouched.
type Redirection struct {
	Input  string
	Output string
	Append string
}

// Command is one parsed command line, ready for dispatch.
type Command struct {
	// Path is the command word as typed: either a builtin name or the path
	// handed to the exec layer.
	Path string
	// Argv is the argument vector for the program. Argv[0] is the basename
	// of Path when the command word is an absolute path.
	Argv []string
	// Redir holds the redirection plan extracted from the line.
	Redir Redirection
	// Background reports a trailing & word, which requests an asynchronous
	// launch and is stripped from Argv.
	Background bool
}

func isRedirectWord(w string) bool {
	return w == "<" || w == ">" || w == ">>"
}

// Parse splits the line into a Command. An empty or all-whitespace line
// yields (nil, nil). Syntax errors carry user-facing messages and leave no
// side effects.
func Parse(line string) (*Command, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, nil
	}

	cmd := &Command{}
	if words[len(words)-1] == "&" {
		cmd.Background = true
		words = words[:len(words)-1]
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		if !isRedirectWord(w) {
			if w == "&" {
				return nil, errBackgroundAmpPos
			}
			cmd.Argv = append(cmd.Argv, w)
			continue
		}

		if i+1 >= len(words) {
			if w == "<" {
				return nil, errNoInputFile
			}
			return nil, errNoOutputFile
		}
		target := words[i+1]
		if isRedirectWord(target) {
			return nil, errFileIsRedirect
		}

		switch w {
		case "<":
			if cmd.Redir.Input != "" {
				return nil, errMultipleInputs
			}
			cmd.Redir.Input = target
		case ">":
			if cmd.Redir.Output != "" || cmd.Redir.Append != "" {
				return nil, errMultipleOutputs
			}
			cmd.Redir.Output = target
		case ">>":
			if cmd.Redir.Output != "" || cmd.Redir.Append != "" {
				return nil, errMultipleOutputs
			}
			cmd.Redir.Append = target
		}
		i++
	}

	if len(cmd.Argv) == 0 {
		if cmd.Redir != (Redirection{}) {
			return nil, errRedirectsOnly
		}
		// A bare & with nothing to run.
		return nil, nil
	}

	cmd.Path = cmd.Argv[0]
	if strings.HasPrefix(cmd.Path, "/") {
		cmd.Argv[0] = filepath.Base(cmd.Path)
	}

	return cmd, nil
}
