//go:build linux

package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Paintersrp/gosh/internal/config"
)

// These tests spawn real child processes and exercise the full launch, wait
// and reap paths. Input is not a terminal, so terminal handoff is a no-op
// and job control degrades the same way it does under a pipe.
func runScript(t *testing.T, script string) (string, string) {
	t.Helper()
	var out, diag bytes.Buffer
	sh := New(config.Default(),
		WithInput(strings.NewReader(script)),
		WithOutput(&out),
		WithStderr(&diag),
		WithTerminal(&fakeTerminal{interactive: false}),
	)
	if err := sh.Run(); err != nil {
		t.Fatalf("shell run: %v", err)
	}
	return out.String(), diag.String()
}

func TestForegroundRedirectionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "out.txt")
	second := filepath.Join(dir, "copy.txt")

	script := fmt.Sprintf("echo hi > %s\ncat < %s > %s\nexit\n", first, first, second)
	out, diag := runScript(t, script)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}
	if out != "" {
		t.Fatalf("foreground commands with redirected output must print nothing, got %q", out)
	}

	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != "hi\n" {
		t.Fatalf("expected %q, got %q", "hi\n", string(data))
	}
}

func TestForegroundAppendRedirection(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "log.txt")

	script := fmt.Sprintf("echo one > %s\necho two >> %s\nexit\n", target, target)
	_, diag := runScript(t, script)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("expected appended output, got %q", string(data))
	}
}

func TestBackgroundLaunchPrintsJobLine(t *testing.T) {
	out, diag := runScript(t, "sleep 0.05 &\nexit\n")
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}
	if !regexp.MustCompile(`^\[1\] \(\d+\)\n`).MatchString(out) {
		t.Fatalf("expected background launch line, got %q", out)
	}
}

func TestMissingProgramIsRecoverable(t *testing.T) {
	out, diag := runScript(t, "definitely-not-a-command-xyz\necho ok > /dev/null\nexit\n")
	if diag == "" {
		t.Fatalf("expected a diagnostic for the missing program")
	}
	if out != "" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAbsolutePathRunsExternalProgramOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "jobs")
	if err := os.WriteFile(prog, []byte("#!/bin/sh\necho external\n"), 0o755); err != nil {
		t.Fatalf("write program: %v", err)
	}
	result := filepath.Join(dir, "result.txt")

	script := fmt.Sprintf("%s > %s\nexit\n", prog, result)
	out, diag := runScript(t, script)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %q", diag)
	}
	if out != "" {
		t.Fatalf("builtin must not run for a path command, got %q", out)
	}

	data, err := os.ReadFile(result)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(data) != "external\n" {
		t.Fatalf("expected external program output, got %q", string(data))
	}
}

func TestHeldSignalsDoNotStopShell(t *testing.T) {
	sh := New(config.Default(), WithTerminal(&fakeTerminal{}))
	restore := sh.holdSignals()
	defer restore()

	// Both signals stop the process under default disposition; reaching the
	// end of the test shows they are held and discarded.
	for _, sig := range []unix.Signal{unix.SIGTTOU, unix.SIGTSTP} {
		if err := unix.Kill(os.Getpid(), sig); err != nil {
			t.Fatalf("kill %v: %v", sig, err)
		}
	}
	time.Sleep(50 * time.Millisecond)
}

func TestInputRedirectionOpenFailure(t *testing.T) {
	_, diag := runScript(t, "cat < /definitely/not/a/file\nexit\n")
	if !strings.Contains(diag, "no such file") {
		t.Fatalf("expected open diagnostic, got %q", diag)
	}
}
