package domain

import (
	"errors"
	"fmt"
)

// Pre-chain rejections: these surface to the caller before any execution
// and before a ChainResult exists.
var (
	// ErrEmptyCommandChain means parsing left zero invocations.
	ErrEmptyCommandChain = errors.New("empty command chain")
	// ErrUnterminatedQuote means a quote was opened but never closed.
	ErrUnterminatedQuote = errors.New("unterminated quote in command chain")
	// ErrEmptyCatalog means no commands were discovered across all sources.
	ErrEmptyCatalog = errors.New("command catalog is empty")
)

// RefusalError carries an LLM reply that declined to produce a command
// instead of a command chain. The reply text is preserved for the caller's
// spoken delivery.
type RefusalError struct {
	Reply string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("model declined to produce a command: %s", e.Reply)
}

// SourceError reports one catalog source that could not be read or parsed.
// Individual source failures are warnings; the catalog build continues.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("catalog source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
