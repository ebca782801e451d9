//go:build !windows

package executor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
)

func TestExecuteCapturesOutput(t *testing.T) {
	e := NewLocalExecutor(5*time.Second, "", 0)
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "echo", Args: []string{"hello", "world"},
	}, 0)

	if !result.Success {
		t.Fatalf("echo should succeed: %+v", result)
	}
	if result.ReturnCode != 0 {
		t.Fatalf("expected code 0, got %d", result.ReturnCode)
	}
	if strings.TrimSpace(result.Stdout) != "hello world" {
		t.Fatalf("unexpected stdout: %q", result.Stdout)
	}
	if result.Duration <= 0 {
		t.Fatal("duration not measured")
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	e := NewLocalExecutor(5*time.Second, "", 0)
	result := e.Execute(context.Background(), domain.CommandInvocation{Name: "false"}, 0)

	if result.Success {
		t.Fatalf("false should fail: %+v", result)
	}
	if result.ReturnCode == 0 {
		t.Fatal("expected non-zero return code")
	}
}

func TestExecuteTimeout(t *testing.T) {
	e := NewLocalExecutor(1*time.Second, "", 0)

	start := time.Now()
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "sleep", Args: []string{"5"},
	}, 0)
	elapsed := time.Since(start)

	if result.Success {
		t.Fatalf("timed-out command reported success: %+v", result)
	}
	if result.ReturnCode != domain.CodeTimeout {
		t.Fatalf("expected timeout sentinel, got %d", result.ReturnCode)
	}
	if elapsed > 1500*time.Millisecond {
		t.Fatalf("timeout not enforced within bound: took %v", elapsed)
	}
	if !strings.Contains(result.Stderr, "timed out") {
		t.Fatalf("stderr should mention the timeout: %q", result.Stderr)
	}
}

func TestExecuteTimeoutOverrideExtends(t *testing.T) {
	// The per-invocation timeout must fully replace the configured one,
	// including overrides longer than it.
	e := NewLocalExecutor(500*time.Millisecond, "", 0)
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "sleep", Args: []string{"1"},
	}, 3*time.Second)

	if !result.Success {
		t.Fatalf("override should let the command finish: %+v", result)
	}
	if result.ReturnCode != 0 {
		t.Fatalf("expected code 0, got %d", result.ReturnCode)
	}
}

func TestExecuteTimeoutOverrideShortens(t *testing.T) {
	e := NewLocalExecutor(10*time.Second, "", 0)

	start := time.Now()
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "sleep", Args: []string{"5"},
	}, 500*time.Millisecond)
	elapsed := time.Since(start)

	if result.Success || result.ReturnCode != domain.CodeTimeout {
		t.Fatalf("expected timeout sentinel, got %+v", result)
	}
	if elapsed > 1500*time.Millisecond {
		t.Fatalf("override timeout not enforced within bound: took %v", elapsed)
	}
}

func TestExecuteContextInterruption(t *testing.T) {
	e := NewLocalExecutor(10*time.Second, "", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	result := e.Execute(ctx, domain.CommandInvocation{
		Name: "sleep", Args: []string{"5"},
	}, 0)

	if result.Success || result.ReturnCode != domain.CodeTimeout {
		t.Fatalf("expected interrupted result with timeout sentinel, got %+v", result)
	}
	if !strings.Contains(result.Stderr, "interrupted") {
		t.Fatalf("stderr should say the run was interrupted, not timed out: %q", result.Stderr)
	}
}

func TestExecuteSpawnFailure(t *testing.T) {
	e := NewLocalExecutor(time.Second, "", 0)
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "definitely-not-a-real-binary-kqzx",
	}, 0)

	if result.Success {
		t.Fatalf("missing binary reported success: %+v", result)
	}
	if result.ReturnCode != domain.CodeSpawnFailure {
		t.Fatalf("expected spawn failure sentinel, got %d", result.ReturnCode)
	}
	if result.Stderr == "" {
		t.Fatal("stderr should carry the OS error")
	}
}

func TestExecuteTruncatesOutput(t *testing.T) {
	e := NewLocalExecutor(5*time.Second, "", 16)
	result := e.Execute(context.Background(), domain.CommandInvocation{
		Name: "echo", Args: []string{strings.Repeat("x", 200)},
	}, 0)

	if !result.Success {
		t.Fatalf("echo should succeed: %+v", result)
	}
	if !strings.Contains(result.Stdout, "truncated") {
		t.Fatalf("expected truncation notice, got %q", result.Stdout)
	}
	if len(result.Stdout) > 100 {
		t.Fatalf("stdout not capped: %d bytes", len(result.Stdout))
	}
}

func TestExecuteWorkingDir(t *testing.T) {
	dir := t.TempDir()
	e := NewLocalExecutor(5*time.Second, dir, 0)
	result := e.Execute(context.Background(), domain.CommandInvocation{Name: "pwd"}, 0)

	if !result.Success {
		t.Fatalf("pwd should succeed: %+v", result)
	}
	// Compare the trailing component; the OS may report the temp dir
	// through a resolved symlink prefix.
	if !strings.Contains(result.Stdout, filepath.Base(dir)) {
		t.Fatalf("expected cwd %q, got %q", dir, result.Stdout)
	}
}
