package parse

import (
	"reflect"
	"testing"
)

func TestParseSimpleCommand(t *testing.T) {
	cmd, err := Parse("echo hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Path != "echo" {
		t.Fatalf("expected path echo, got %q", cmd.Path)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{"echo", "hello", "world"}) {
		t.Fatalf("unexpected argv: %v", cmd.Argv)
	}
	if cmd.Background {
		t.Fatalf("expected foreground command")
	}
}

func TestParseEmptyLine(t *testing.T) {
	for _, line := range []string{"", "   ", "\t\t", " \t "} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("line %q: unexpected error: %v", line, err)
		}
		if cmd != nil {
			t.Fatalf("line %q: expected no command, got %+v", line, cmd)
		}
	}
}

func TestParseAbsolutePathUsesBasename(t *testing.T) {
	cmd, err := Parse("/bin/echo hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Path != "/bin/echo" {
		t.Fatalf("expected full path preserved, got %q", cmd.Path)
	}
	if cmd.Argv[0] != "echo" {
		t.Fatalf("expected argv[0] basename echo, got %q", cmd.Argv[0])
	}
}

func TestParseRedirections(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Redirection
		argv []string
	}{
		{
			name: "output",
			line: "echo hi > out.txt",
			want: Redirection{Output: "out.txt"},
			argv: []string{"echo", "hi"},
		},
		{
			name: "append",
			line: "echo hi >> out.txt",
			want: Redirection{Append: "out.txt"},
			argv: []string{"echo", "hi"},
		},
		{
			name: "input",
			line: "cat < out.txt",
			want: Redirection{Input: "out.txt"},
			argv: []string{"cat"},
		},
		{
			name: "input and output",
			line: "< in.txt sort > sorted.txt",
			want: Redirection{Input: "in.txt", Output: "sorted.txt"},
			argv: []string{"sort"},
		},
		{
			name: "redirect before command word",
			line: "> out.txt echo hi",
			want: Redirection{Output: "out.txt"},
			argv: []string{"echo", "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Redir != tt.want {
				t.Fatalf("redirection plan %+v, want %+v", cmd.Redir, tt.want)
			}
			if !reflect.DeepEqual(cmd.Argv, tt.argv) {
				t.Fatalf("argv %v, want %v", cmd.Argv, tt.argv)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"cat <", "syntax error: no input file"},
		{"echo hi >", "syntax error: no output file"},
		{"echo hi >>", "syntax error: no output file"},
		{"cat < >", "syntax error: input file is a redirection symbol"},
		{"echo > > out", "syntax error: input file is a redirection symbol"},
		{"cat < a < b", "syntax error: multiple input files"},
		{"echo > a > b", "syntax error: multiple output files"},
		{"echo > a >> b", "syntax error: multiple output files"},
		{"echo >> a > b", "syntax error: multiple output files"},
		{"> out.txt", "error: redirects with no command"},
		{"< in.txt", "error: redirects with no command"},
		{"echo & hi", "syntax error: & must be the last word"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			if err == nil {
				t.Fatalf("expected error, got %+v", cmd)
			}
			if err.Error() != tt.want {
				t.Fatalf("error %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseBackground(t *testing.T) {
	cmd, err := Parse("sleep 100 &")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmd.Background {
		t.Fatalf("expected background launch")
	}
	if !reflect.DeepEqual(cmd.Argv, []string{"sleep", "100"}) {
		t.Fatalf("expected & stripped from argv, got %v", cmd.Argv)
	}

	cmd, err = Parse("&")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != nil {
		t.Fatalf("bare & should yield no command, got %+v", cmd)
	}
}

func TestParseBackgroundWithRedirection(t *testing.T) {
	cmd, err := Parse("sleep 100 > out.txt &")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmd.Background {
		t.Fatalf("expected background launch")
	}
	if cmd.Redir.Output != "out.txt" {
		t.Fatalf("expected output redirection, got %+v", cmd.Redir)
	}
}
