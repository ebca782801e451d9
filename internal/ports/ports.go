// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (chain orchestration) depends only on these
// abstractions; concrete adapters live in the infrastructure layer. This is
// the boundary that keeps LLM-facing glue, storage, and process spawning
// swappable without touching the pipeline's semantics.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.vox/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CatalogSource resolves one command-definition identifier (e.g. a file
// path) into the descriptors it declares. Implementations wrap whatever
// external definition format the collaborator uses.
type CatalogSource interface {
	Identifier() string
	Discover(context.Context) ([]domain.CommandDescriptor, error)
}

// CatalogProvider hands out complete catalog snapshots. A snapshot is
// immutable: a chain run validates every link against the same catalog even
// if a rebuild happens mid-run.
type CatalogProvider interface {
	Snapshot() (domain.Catalog, error)
	Rebuild(context.Context) (domain.Catalog, []error)
}

// ChainParser splits raw LLM output into ordered invocation candidates.
// Errors are pre-chain rejections (empty chain, unterminated quote, refusal).
type ChainParser interface {
	Parse(raw string) ([]domain.CommandInvocation, error)
}

// CommandValidator decides whether an invocation may execute. Rejection is
// expressed in the verdict, never as an error.
type CommandValidator interface {
	Validate(inv domain.CommandInvocation, catalog domain.Catalog, allowRawShell bool) domain.Verdict
}

// CommandExecutor runs one accepted invocation as a subprocess, exactly once.
// A positive timeout replaces the executor's configured per-command timeout
// for this invocation; zero keeps the configured value.
type CommandExecutor interface {
	Execute(ctx context.Context, inv domain.CommandInvocation, timeout time.Duration) domain.ExecutionResult
}

// HistoryRepository persists completed chain runs.
type HistoryRepository interface {
	Save(record domain.ChainRecord) error
	List(limit int) ([]domain.ChainRecord, error)
	Search(keyword string, limit int) ([]domain.ChainRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
