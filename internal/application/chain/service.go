// Package chain orchestrates one command chain end to end:
// parse, then validate and execute each link in order, halting on the
// first rejection or failure.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Service drives the pipeline across a whole chain. It exclusively owns
// the invocation list and the growing result sequence for one run; links
// execute strictly one at a time because later commands may depend on the
// side effects of earlier ones.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	CatalogProvider ports.CatalogProvider
	Parser          ports.ChainParser
	Validator       ports.CommandValidator
	Executor        ports.CommandExecutor
	HistoryStore    ports.HistoryRepository
	Logger          ports.Logger
}

// runSetup is everything prepare resolves once per run: the effective
// context, the config and catalog snapshots, and the parsed invocations.
type runSetup struct {
	ctx         context.Context
	cfg         domain.Config
	catalog     domain.Catalog
	invocations []domain.CommandInvocation
}

// Run processes one raw LLM output string into a ChainResult.
//
// Parse failures and an empty catalog are pre-chain rejections: they
// return an error and no ChainResult exists. Everything after that point
// is recorded inside the result, including validator rejections, which
// appear as synthetic failed results with domain.CodeRejected.
func (s *Service) Run(req domain.ChainRequest) (domain.ChainResult, error) {
	setup, err := s.prepare(req)
	if err != nil {
		return domain.ChainResult{}, err
	}

	result := domain.ChainResult{RunID: uuid.NewString()}
	start := time.Now()
	rawShell := rawShellPermitted(setup.cfg, req)

	for i, inv := range setup.invocations {
		// Cooperative cancellation between links; a subprocess already
		// running is only interrupted by its own timeout.
		if setup.ctx.Err() != nil {
			s.Logger.Warn("chain cancelled", map[string]interface{}{
				"run_id": result.RunID, "completed": i, "parsed": len(setup.invocations),
			})
			result.HaltedEarly = true
			break
		}

		verdict := s.Validator.Validate(inv, setup.catalog, rawShell)
		if !verdict.Accepted {
			s.Logger.Info("invocation rejected", map[string]interface{}{
				"run_id": result.RunID, "command": inv.Name, "reason": string(verdict.Reason),
			})
			result.Results = append(result.Results, rejectionResult(verdict))
			result.HaltedEarly = true
			break
		}

		execResult := s.Executor.Execute(setup.ctx, inv, overrideTimeout(req))
		result.Results = append(result.Results, execResult)
		if !execResult.Success {
			result.HaltedEarly = true
			break
		}
	}

	result.Duration = time.Since(start)
	result.OverallSuccess = !result.HaltedEarly && allSucceeded(result.Results)

	s.record(req, setup, result)
	return result, nil
}

// Validate parses the chain and returns each invocation's verdict without
// spawning anything. Unlike Run it does not stop at the first rejection,
// so a dry run surfaces every problem at once.
func (s *Service) Validate(req domain.ChainRequest) ([]domain.Verdict, error) {
	setup, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	rawShell := rawShellPermitted(setup.cfg, req)
	verdicts := make([]domain.Verdict, 0, len(setup.invocations))
	for _, inv := range setup.invocations {
		verdicts = append(verdicts, s.Validator.Validate(inv, setup.catalog, rawShell))
	}
	return verdicts, nil
}

// prepare resolves the run's context, config, catalog snapshot, and parsed
// invocations. Config is loaded exactly once per run; the policy check and
// the history gate both read the same snapshot.
func (s *Service) prepare(req domain.ChainRequest) (runSetup, error) {
	if s.ConfigProvider == nil || s.CatalogProvider == nil || s.Parser == nil ||
		s.Validator == nil || s.Executor == nil || s.Logger == nil {
		return runSetup{}, errors.New("chain.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return runSetup{}, fmt.Errorf("config: %w", err)
	}

	catalog, err := s.CatalogProvider.Snapshot()
	if err != nil {
		return runSetup{}, fmt.Errorf("catalog: %w", err)
	}
	if catalog.Len() == 0 {
		return runSetup{}, domain.ErrEmptyCatalog
	}

	invocations, err := s.Parser.Parse(req.RawText)
	if err != nil {
		return runSetup{}, err
	}

	s.Logger.Debug("chain parsed", map[string]interface{}{
		"links": len(invocations), "catalog": catalog.Len(),
	})
	return runSetup{ctx: ctx, cfg: cfg, catalog: catalog, invocations: invocations}, nil
}

// overrideTimeout converts the request's per-command override into the
// executor's timeout argument; zero keeps the executor's configured value.
func overrideTimeout(req domain.ChainRequest) time.Duration {
	if req.TimeoutOverride <= 0 {
		return 0
	}
	return time.Duration(req.TimeoutOverride) * time.Second
}

// rawShellPermitted requires both the run's request and the configured
// global policy to opt in before raw_shell catalog entries relax safety.
func rawShellPermitted(cfg domain.Config, req domain.ChainRequest) bool {
	return req.AllowRawShell && cfg.Execution.AllowRawShell
}

func (s *Service) record(req domain.ChainRequest, setup runSetup, result domain.ChainResult) {
	if s.HistoryStore == nil || !setup.cfg.History.Enabled {
		return
	}
	commands := make([]string, 0, len(setup.invocations))
	for _, inv := range setup.invocations {
		commands = append(commands, inv.String())
	}
	err := s.HistoryStore.Save(domain.ChainRecord{
		RunID:          result.RunID,
		Timestamp:      time.Now(),
		RawText:        req.RawText,
		Commands:       strings.Join(commands, " && "),
		Attempted:      result.Attempted(),
		HaltedEarly:    result.HaltedEarly,
		OverallSuccess: result.OverallSuccess,
		DurationMS:     result.Duration.Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func rejectionResult(verdict domain.Verdict) domain.ExecutionResult {
	return domain.ExecutionResult{
		Invocation: verdict.Invocation,
		Success:    false,
		Stderr:     verdict.Detail,
		ReturnCode: domain.CodeRejected,
	}
}

func allSucceeded(results []domain.ExecutionResult) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}

var _ domain.ChainService = (*Service)(nil)
