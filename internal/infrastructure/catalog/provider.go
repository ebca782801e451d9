package catalog

import (
	"context"
	"sync/atomic"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Provider hands out immutable catalog snapshots with an atomic swap on
// rebuild: a chain run mid-flight keeps the snapshot it started with and a
// concurrent rebuild can never expose a partial merge.
type Provider struct {
	builder *Builder
	current atomic.Pointer[domain.Catalog]
}

// NewProvider wraps a builder. The first Snapshot call triggers a build.
func NewProvider(builder *Builder) *Provider {
	return &Provider{builder: builder}
}

// Snapshot implements ports.CatalogProvider. It returns the current
// catalog, building it on first use. An empty catalog is an error because
// every subsequent validation would fail as unknown.
func (p *Provider) Snapshot() (domain.Catalog, error) {
	if c := p.current.Load(); c != nil {
		return *c, nil
	}
	c, _ := p.Rebuild(context.Background())
	if c.Len() == 0 {
		return domain.Catalog{}, domain.ErrEmptyCatalog
	}
	return c, nil
}

// Rebuild implements ports.CatalogProvider. The new catalog is published
// only after the merge completed in full; on an empty result the previous
// snapshot stays in place.
func (p *Provider) Rebuild(ctx context.Context) (domain.Catalog, []error) {
	built, warnings := p.builder.Build(ctx)
	if built.Len() > 0 {
		p.current.Store(&built)
	}
	return built, warnings
}

var _ ports.CatalogProvider = (*Provider)(nil)
