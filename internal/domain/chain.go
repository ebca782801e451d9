package domain

import "context"

// ChainRequest captures one raw LLM output string plus the run's execution
// policy, originating from the CLI or the voice loop.
type ChainRequest struct {
	Context context.Context
	// RawText is the LLM's command-chain output, verbatim.
	RawText string
	// TimeoutOverride, when positive, replaces the configured per-command
	// timeout (seconds).
	TimeoutOverride int
	// AllowRawShell permits raw_shell catalog entries to carry shell
	// metacharacters in their arguments for this run.
	AllowRawShell bool
}

// ChainService exposes the use-case boundary for running one command chain.
// Validate parses and validates without spawning anything (dry run).
type ChainService interface {
	Run(ChainRequest) (ChainResult, error)
	Validate(ChainRequest) ([]Verdict, error)
}
