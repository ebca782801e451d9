package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.vox/config.yaml (overridable via VOX_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path reports the config file location in effect.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("VOX_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.VoxDir("config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Catalog: domain.CatalogSettings{
			Sources: []string{filesystem.VoxDir("commands.yaml")},
		},
		Execution: domain.ExecutionSettings{
			TimeoutSeconds: 30,
			MaxOutputBytes: domain.DefaultMaxOutputBytes,
			AllowRawShell:  false,
		},
		History: domain.HistorySettings{
			Enabled: true,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Execution.TimeoutSeconds <= 0 {
		cfg.Execution.TimeoutSeconds = 30
	}
	if cfg.Execution.MaxOutputBytes <= 0 {
		cfg.Execution.MaxOutputBytes = domain.DefaultMaxOutputBytes
	}
	if len(cfg.Catalog.Sources) == 0 {
		cfg.Catalog.Sources = []string{filesystem.VoxDir("commands.yaml")}
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
