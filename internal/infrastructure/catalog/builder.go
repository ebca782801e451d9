package catalog

import (
	"context"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Builder merges command descriptors from an ordered list of sources.
type Builder struct {
	sources []ports.CatalogSource
	logger  ports.Logger
}

// NewBuilder creates a builder over the given sources, in merge order.
func NewBuilder(sources []ports.CatalogSource, logger ports.Logger) *Builder {
	return &Builder{sources: sources, logger: logger}
}

// FromPaths is a convenience constructor wrapping each path in a YAMLSource.
func FromPaths(paths []string, logger ports.Logger) *Builder {
	sources := make([]ports.CatalogSource, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, NewYAMLSource(p))
	}
	return NewBuilder(sources, logger)
}

// Build merges all sources into one catalog. A source that cannot be read
// or parsed is skipped and reported as a *domain.SourceError warning;
// later sources override earlier ones on name collision, which is logged.
// Zero commands across all sources is domain.ErrEmptyCatalog.
func (b *Builder) Build(ctx context.Context) (domain.Catalog, []error) {
	var (
		warnings []error
		merged   []domain.CommandDescriptor
		index    = map[string]int{}
	)

	for _, source := range b.sources {
		descriptors, err := source.Discover(ctx)
		if err != nil {
			warnings = append(warnings, &domain.SourceError{Source: source.Identifier(), Err: err})
			if b.logger != nil {
				b.logger.Warn("catalog source skipped", map[string]interface{}{
					"source": source.Identifier(),
					"error":  err.Error(),
				})
			}
			continue
		}
		for _, d := range descriptors {
			if at, seen := index[d.Name]; seen {
				if b.logger != nil {
					b.logger.Info("catalog entry overridden", map[string]interface{}{
						"command":  d.Name,
						"previous": merged[at].Source,
						"source":   d.Source,
					})
				}
				merged[at] = d
				continue
			}
			index[d.Name] = len(merged)
			merged = append(merged, d)
		}
	}

	if len(merged) == 0 {
		warnings = append(warnings, domain.ErrEmptyCatalog)
		return domain.Catalog{}, warnings
	}
	return domain.NewCatalog(merged), warnings
}
