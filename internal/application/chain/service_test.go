package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/infrastructure/parser"
	"github.com/doeshing/vox-go/internal/infrastructure/security"
	"github.com/doeshing/vox-go/internal/ports"
)

type stubConfig struct {
	cfg   domain.Config
	loads int
}

func (s *stubConfig) Load(context.Context) (domain.Config, error) {
	s.loads++
	return s.cfg, nil
}

type stubCatalog struct {
	catalog domain.Catalog
}

func (s *stubCatalog) Snapshot() (domain.Catalog, error) {
	if s.catalog.Len() == 0 {
		return domain.Catalog{}, domain.ErrEmptyCatalog
	}
	return s.catalog, nil
}

func (s *stubCatalog) Rebuild(context.Context) (domain.Catalog, []error) {
	return s.catalog, nil
}

// spyExecutor records every spawn so tests can prove validation always
// precedes execution. Outcomes are scripted per command name.
type spyExecutor struct {
	calls    []string
	timeouts []time.Duration
	failures map[string]bool
}

func (s *spyExecutor) Execute(_ context.Context, inv domain.CommandInvocation, timeout time.Duration) domain.ExecutionResult {
	s.calls = append(s.calls, inv.Name)
	s.timeouts = append(s.timeouts, timeout)
	if s.failures[inv.Name] {
		return domain.ExecutionResult{Invocation: inv, Success: false, ReturnCode: 1, Stderr: "scripted failure"}
	}
	return domain.ExecutionResult{Invocation: inv, Success: true, ReturnCode: 0, Stdout: "ok"}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func chainCatalog() domain.Catalog {
	return domain.NewCatalog([]domain.CommandDescriptor{
		{Name: "list_dir", Parameters: []domain.Parameter{{Name: "path", Required: true}}},
		{Name: "backup_file", Parameters: []domain.Parameter{{Name: "path", Required: true}}},
		{Name: "flaky", Parameters: []domain.Parameter{{Name: "arg", Required: false}}},
	})
}

func newTestService(executor ports.CommandExecutor) *Service {
	return &Service{
		ConfigProvider:  &stubConfig{cfg: domain.Config{}},
		CatalogProvider: &stubCatalog{catalog: chainCatalog()},
		Parser:          parser.New(),
		Validator:       security.NewCatalogValidator(),
		Executor:        executor,
		Logger:          nopLogger{},
	}
}

func TestRunFullChainSuccess(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	result, err := s.Run(domain.ChainRequest{RawText: "list_dir ./tmp && backup_file ./tmp/a.txt"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}
	if result.HaltedEarly || !result.OverallSuccess {
		t.Fatalf("expected clean completion, got %+v", result)
	}
	if result.RunID == "" {
		t.Fatal("run ID missing")
	}
}

func TestRunHaltsOnFirstFailure(t *testing.T) {
	spy := &spyExecutor{failures: map[string]bool{"flaky": true}}
	s := newTestService(spy)

	result, err := s.Run(domain.ChainRequest{RawText: "list_dir . && flaky && backup_file a"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results (third never attempted), got %d", len(result.Results))
	}
	if !result.HaltedEarly || result.OverallSuccess {
		t.Fatalf("expected halted failure, got %+v", result)
	}
	if len(spy.calls) != 2 || spy.calls[0] != "list_dir" || spy.calls[1] != "flaky" {
		t.Fatalf("unexpected spawns: %v", spy.calls)
	}
}

func TestRunRejectionNeverSpawns(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	result, err := s.Run(domain.ChainRequest{RawText: "wipe_disk /dev/sda && list_dir ."})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(spy.calls) != 0 {
		t.Fatalf("rejected command must never spawn, got %v", spy.calls)
	}
	if len(result.Results) != 1 {
		t.Fatalf("expected 1 synthetic result, got %d", len(result.Results))
	}
	r := result.Results[0]
	if r.Success || r.ReturnCode != domain.CodeRejected {
		t.Fatalf("expected rejection sentinel, got %+v", r)
	}
	if !result.HaltedEarly || result.OverallSuccess {
		t.Fatalf("rejection must halt the chain, got %+v", result)
	}
}

func TestRunRejectionMidChain(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	result, err := s.Run(domain.ChainRequest{RawText: "list_dir . && wipe_disk x && backup_file a"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(spy.calls) != 1 || spy.calls[0] != "list_dir" {
		t.Fatalf("only the first link should spawn, got %v", spy.calls)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected executed + synthetic results, got %d", len(result.Results))
	}
	if result.Results[1].ReturnCode != domain.CodeRejected {
		t.Fatalf("expected rejection sentinel, got %+v", result.Results[1])
	}
}

func TestRunEmptyChainIsPreChainRejection(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	_, err := s.Run(domain.ChainRequest{RawText: "&&"})
	if !errors.Is(err, domain.ErrEmptyCommandChain) {
		t.Fatalf("expected ErrEmptyCommandChain, got %v", err)
	}
	if len(spy.calls) != 0 {
		t.Fatalf("nothing may spawn on a parse failure, got %v", spy.calls)
	}
}

func TestRunEmptyCatalogIsPreChainRejection(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)
	s.CatalogProvider = &stubCatalog{}

	_, err := s.Run(domain.ChainRequest{RawText: "list_dir ."})
	if !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if len(spy.calls) != 0 {
		t.Fatalf("nothing may spawn without a catalog, got %v", spy.calls)
	}
}

func TestRunCancellationBetweenLinks(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(domain.ChainRequest{Context: ctx, RawText: "list_dir . && backup_file a"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(spy.calls) != 0 {
		t.Fatalf("cancelled chain must not spawn, got %v", spy.calls)
	}
	if !result.HaltedEarly {
		t.Fatalf("cancelled chain must report early halt, got %+v", result)
	}
}

func TestRunTimeoutOverrideReachesExecutor(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	_, err := s.Run(domain.ChainRequest{RawText: "list_dir . && backup_file a", TimeoutOverride: 5})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(spy.timeouts) != 2 {
		t.Fatalf("expected 2 spawns, got %d", len(spy.timeouts))
	}
	for _, timeout := range spy.timeouts {
		if timeout != 5*time.Second {
			t.Fatalf("override not handed to executor: %v", spy.timeouts)
		}
	}
}

func TestRunWithoutOverrideKeepsExecutorTimeout(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	_, err := s.Run(domain.ChainRequest{RawText: "list_dir ."})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(spy.timeouts) != 1 || spy.timeouts[0] != 0 {
		t.Fatalf("expected zero timeout (executor default), got %v", spy.timeouts)
	}
}

func TestRunLoadsConfigOnce(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)
	cfgProvider := &stubConfig{cfg: domain.Config{History: domain.HistorySettings{Enabled: true}}}
	s.ConfigProvider = cfgProvider
	s.HistoryStore = &memoryHistory{}

	_, err := s.Run(domain.ChainRequest{RawText: "list_dir . && backup_file a && flaky", AllowRawShell: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if cfgProvider.loads != 1 {
		t.Fatalf("config loaded %d times, want 1", cfgProvider.loads)
	}
}

func TestValidateReportsEveryVerdict(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)

	verdicts, err := s.Validate(domain.ChainRequest{RawText: "list_dir . && wipe_disk x && backup_file a"})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(verdicts) != 3 {
		t.Fatalf("dry run should judge every link, got %d", len(verdicts))
	}
	if !verdicts[0].Accepted || verdicts[1].Accepted || !verdicts[2].Accepted {
		t.Fatalf("unexpected verdicts: %+v", verdicts)
	}
	if len(spy.calls) != 0 {
		t.Fatalf("dry run must not spawn, got %v", spy.calls)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	spy := &spyExecutor{}
	s := newTestService(spy)
	s.ConfigProvider = &stubConfig{cfg: domain.Config{History: domain.HistorySettings{Enabled: true}}}
	store := &memoryHistory{}
	s.HistoryStore = store

	result, err := s.Run(domain.ChainRequest{RawText: "list_dir ."})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(store.records))
	}
	rec := store.records[0]
	if rec.RunID != result.RunID || rec.Attempted != 1 || !rec.OverallSuccess {
		t.Fatalf("record mismatch: %+v", rec)
	}
}

type memoryHistory struct {
	records []domain.ChainRecord
}

func (m *memoryHistory) Save(r domain.ChainRecord) error { m.records = append(m.records, r); return nil }
func (m *memoryHistory) List(int) ([]domain.ChainRecord, error) {
	return m.records, nil
}
func (m *memoryHistory) Search(string, int) ([]domain.ChainRecord, error) {
	return m.records, nil
}
func (m *memoryHistory) Clear() error { m.records = nil; return nil }
