package runner

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("execution test requires a POSIX shell")
	}
}

func TestRunnerCapturesStdout(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{Root: t.TempDir()})

	res, err := r.Run(context.Background(), []string{"sh", "-c", `echo '{"Action":"pass"}'`})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != `{"Action":"pass"}` {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRunnerNonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{Root: t.TempDir()})

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo boom >&2; exit 3"})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stderr) != "boom" {
		t.Fatalf("expected stderr captured, got %q", res.Stderr)
	}
}

func TestRunnerKeepsStderrTail(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{Root: t.TempDir()})

	res, err := r.Run(context.Background(), []string{"sh", "-c", `i=1; while [ $i -le 25 ]; do echo "line $i" >&2; i=$((i+1)); done; exit 1`})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	lines := strings.Split(res.Stderr, "\n")
	if len(lines) != stderrTailLines {
		t.Fatalf("expected %d stderr lines, got %d: %q", stderrTailLines, len(lines), res.Stderr)
	}
	if lines[0] != "line 6" || lines[len(lines)-1] != "line 25" {
		t.Fatalf("unexpected stderr tail %q", res.Stderr)
	}
}

func TestRunnerVerboseStreamsStderr(t *testing.T) {
	skipOnWindows(t)
	stderr := &bytes.Buffer{}
	r := New(Options{Root: t.TempDir(), Stderr: stderr, Verbose: true})

	if _, err := r.Run(context.Background(), []string{"sh", "-c", "echo progress >&2"}); err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if !strings.Contains(stderr.String(), "progress") {
		t.Fatalf("expected stderr streamed, got %q", stderr.String())
	}
}

func TestRunnerMissingCommand(t *testing.T) {
	r := New(Options{Root: t.TempDir()})
	if _, err := r.Run(context.Background(), []string{"tcreport-no-such-binary"}); err == nil {
		t.Fatalf("expected error for missing executable")
	}
	if _, err := r.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestTailLines(t *testing.T) {
	in := "a\nb\nc\nd\n"
	if got := tailLines(in, 2); got != "c\nd" {
		t.Fatalf("tailLines = %q", got)
	}
	if got := tailLines(in, 10); got != "a\nb\nc\nd" {
		t.Fatalf("tailLines = %q", got)
	}
	if got := tailLines("", 3); got != "" {
		t.Fatalf("tailLines empty = %q", got)
	}
}
