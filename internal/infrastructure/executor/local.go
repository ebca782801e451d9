// Package executor spawns validated invocations as local subprocesses.
//
// Commands run as a discrete argument vector and are never passed through
// a shell, so the injection surface the validator closed stays closed.
package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// LocalExecutor runs commands on the host, one attempt per invocation.
type LocalExecutor struct {
	timeout        time.Duration
	workingDir     string
	maxOutputBytes int
}

// NewLocalExecutor builds an executor with the given per-command timeout.
// Non-positive values fall back to the domain default.
func NewLocalExecutor(timeout time.Duration, workingDir string, maxOutputBytes int) *LocalExecutor {
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	if maxOutputBytes <= 0 {
		maxOutputBytes = domain.DefaultMaxOutputBytes
	}
	return &LocalExecutor{
		timeout:        timeout,
		workingDir:     workingDir,
		maxOutputBytes: maxOutputBytes,
	}
}

// Execute implements ports.CommandExecutor. A positive timeout replaces
// the configured per-command timeout for this invocation.
//
// Outcomes map to sentinel codes: a process that never started reports
// CodeSpawnFailure with the OS error in stderr; a timeout or a context
// interruption kills the whole process group and reports CodeTimeout with
// whatever output was captured before the kill; a normal exit reports the
// real code.
func (e *LocalExecutor) Execute(ctx context.Context, inv domain.CommandInvocation, timeout time.Duration) domain.ExecutionResult {
	if timeout <= 0 {
		timeout = e.timeout
	}

	cmd := exec.Command(inv.Name, inv.Args...)
	if e.workingDir != "" {
		cmd.Dir = e.workingDir
	}
	configureProcess(cmd)

	stdout := newCappedBuffer(e.maxOutputBytes)
	stderr := newCappedBuffer(e.maxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return domain.ExecutionResult{
			Invocation: inv,
			Success:    false,
			Stderr:     spawnFailureMessage(inv.Name, err),
			ReturnCode: domain.CodeSpawnFailure,
			Duration:   time.Since(start),
		}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr error
	timedOut := false
	interrupted := false
	select {
	case waitErr = <-done:
	case <-timer.C:
		timedOut = true
		terminateProcess(cmd)
		<-done
	case <-ctx.Done():
		interrupted = true
		terminateProcess(cmd)
		<-done
	}
	duration := time.Since(start)

	if timedOut || interrupted {
		reason := fmt.Sprintf("command timed out after %v", duration.Round(time.Millisecond))
		if interrupted {
			reason = fmt.Sprintf("command interrupted after %v: %v", duration.Round(time.Millisecond), ctx.Err())
		}
		return domain.ExecutionResult{
			Invocation: inv,
			Success:    false,
			Stdout:     stdout.String(),
			Stderr:     reason + "\n" + stderr.String(),
			ReturnCode: domain.CodeTimeout,
			Duration:   duration,
		}
	}

	code := 0
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if waitErr != nil {
		return domain.ExecutionResult{
			Invocation: inv,
			Success:    false,
			Stdout:     stdout.String(),
			Stderr:     spawnFailureMessage(inv.Name, waitErr),
			ReturnCode: domain.CodeSpawnFailure,
			Duration:   duration,
		}
	}

	return domain.ExecutionResult{
		Invocation: inv,
		Success:    code == 0,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ReturnCode: code,
		Duration:   duration,
	}
}

func spawnFailureMessage(name string, err error) string {
	if os.IsNotExist(err) {
		return fmt.Sprintf("command not found: %s", name)
	}
	return fmt.Sprintf("failed to start %s: %v", name, err)
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
