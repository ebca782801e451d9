// Package doctor runs environment diagnostics for the command pipeline.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Pinger is implemented by history stores that can report backend health.
type Pinger interface {
	Ping() error
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	CatalogProvider ports.CatalogProvider
	HistoryStore    ports.HistoryRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format version %s", cfg.ConfigFormatVersion)))

	catalog, warnings := s.CatalogProvider.Rebuild(ctx)
	for _, w := range warnings {
		if errors.Is(w, domain.ErrEmptyCatalog) {
			continue // reported by the catalog size check below
		}
		checks = append(checks, warn("Catalog source", w.Error()))
	}
	if catalog.Len() == 0 {
		checks = append(checks, fail("Catalog", "no commands discovered; every chain would be rejected"))
	} else {
		checks = append(checks, ok("Catalog", fmt.Sprintf("%d commands discovered", catalog.Len())))
		checks = append(checks, executableCheck(catalog))
	}

	if s.HistoryStore != nil {
		if pinger, pingable := s.HistoryStore.(Pinger); pingable {
			if err := pinger.Ping(); err != nil {
				checks = append(checks, warn("History store", err.Error()))
			} else {
				checks = append(checks, ok("History store", "sqlite reachable"))
			}
		} else {
			checks = append(checks, ok("History store", "available"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

// executableCheck verifies every cataloged command resolves to a binary on
// PATH, so a chain does not fail at spawn time for a discoverable reason.
func executableCheck(catalog domain.Catalog) domain.HealthCheck {
	var missing []string
	for _, name := range catalog.Names() {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return warn("Executables", fmt.Sprintf("not found on PATH: %s", strings.Join(missing, ", ")))
	}
	return ok("Executables", "all cataloged commands resolve on PATH")
}

func ok(name, msg string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Message: msg}
}

func warn(name, msg string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Message: msg}
}

func fail(name, msg string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthFail, Message: msg}
}
