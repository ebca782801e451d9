package domain

import "time"

// Sentinel return codes for outcomes that never produced a real exit code.
const (
	// CodeTimeout marks an invocation killed after exceeding its timeout.
	CodeTimeout = -1
	// CodeRejected marks an invocation the validator refused before spawn.
	CodeRejected = -2
	// CodeSpawnFailure marks an invocation whose process never started
	// (executable missing, permission denied). 127 matches shell convention.
	CodeSpawnFailure = 127
)

// ExecutionResult is the outcome of exactly one invocation attempt.
// Created once, never mutated.
type ExecutionResult struct {
	Invocation CommandInvocation
	Success    bool
	Stdout     string
	Stderr     string
	ReturnCode int
	Duration   time.Duration
}

// TimedOut reports whether the invocation hit its timeout.
func (r ExecutionResult) TimedOut() bool {
	return r.ReturnCode == CodeTimeout
}

// Rejected reports whether the invocation was refused before execution.
func (r ExecutionResult) Rejected() bool {
	return r.ReturnCode == CodeRejected
}

// ChainResult aggregates a full chain run. Results are in execution order
// and may be shorter than the parsed chain when the run halted early.
type ChainResult struct {
	RunID          string
	Results        []ExecutionResult
	HaltedEarly    bool
	OverallSuccess bool
	Duration       time.Duration
}

// Attempted returns how many invocations were actually tried.
func (c ChainResult) Attempted() int {
	return len(c.Results)
}
