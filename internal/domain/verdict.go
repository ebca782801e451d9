package domain

// RejectionReason enumerates why the validator refused an invocation.
type RejectionReason string

const (
	RejectUnknownCommand RejectionReason = "unknown_command"
	RejectArityMismatch  RejectionReason = "arity_mismatch"
	RejectUnsafeArgument RejectionReason = "unsafe_argument"
)

// Verdict is the validator's decision on a single invocation. Rejection is
// a normal value consumed by the chain orchestrator, never an error.
type Verdict struct {
	Invocation CommandInvocation
	Accepted   bool
	Reason     RejectionReason
	Detail     string
}

// Accept builds an accepting verdict.
func Accept(inv CommandInvocation) Verdict {
	return Verdict{Invocation: inv, Accepted: true}
}

// Reject builds a rejecting verdict with a reason and human-readable detail.
func Reject(inv CommandInvocation, reason RejectionReason, detail string) Verdict {
	return Verdict{Invocation: inv, Reason: reason, Detail: detail}
}
