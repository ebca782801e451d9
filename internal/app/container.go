package app

import (
	"context"
	"time"

	"github.com/doeshing/vox-go/internal/application/chain"
	"github.com/doeshing/vox-go/internal/application/doctor"
	"github.com/doeshing/vox-go/internal/infrastructure/catalog"
	"github.com/doeshing/vox-go/internal/infrastructure/config"
	"github.com/doeshing/vox-go/internal/infrastructure/executor"
	"github.com/doeshing/vox-go/internal/infrastructure/history"
	"github.com/doeshing/vox-go/internal/infrastructure/parser"
	"github.com/doeshing/vox-go/internal/infrastructure/security"
	"github.com/doeshing/vox-go/internal/pkg/logger"
	"github.com/doeshing/vox-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ChainService    *chain.Service
	DoctorService   *doctor.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	CatalogProvider ports.CatalogProvider
	HistoryStore    ports.HistoryRepository
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph. catalogOverride, when
// non-empty, replaces the configured catalog sources for this process.
func BuildContainer(ctx context.Context, verbose bool, catalogOverride []string) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	sources := cfg.Catalog.Sources
	if len(catalogOverride) > 0 {
		sources = catalogOverride
	}
	catalogProvider := catalog.NewProvider(catalog.FromPaths(sources, log))

	historyStore := history.NewSQLiteStore()

	chainService := &chain.Service{
		ConfigProvider:  cfgLoader,
		CatalogProvider: catalogProvider,
		Parser:          parser.New(),
		Validator:       security.NewCatalogValidator(),
		Executor: executor.NewLocalExecutor(
			time.Duration(cfg.Execution.TimeoutSeconds)*time.Second,
			cfg.Execution.WorkingDir,
			cfg.Execution.MaxOutputBytes,
		),
		HistoryStore: historyStore,
		Logger:       log,
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		CatalogProvider: catalogProvider,
		HistoryStore:    historyStore,
	}

	return &Container{
		ChainService:    chainService,
		DoctorService:   doctorService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		CatalogProvider: catalogProvider,
		HistoryStore:    historyStore,
		Logger:          log,
	}, nil
}
