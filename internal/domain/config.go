package domain

// Config mirrors ~/.vox/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Catalog             CatalogSettings   `yaml:"catalog"`
	Execution           ExecutionSettings `yaml:"execution"`
	History             HistorySettings   `yaml:"history"`
}

// CatalogSettings lists the command-definition sources to discover.
type CatalogSettings struct {
	Sources []string `yaml:"sources"`
}

// ExecutionSettings controls how validated commands run.
type ExecutionSettings struct {
	TimeoutSeconds int    `yaml:"timeout"`
	WorkingDir     string `yaml:"working_dir"`
	MaxOutputBytes int    `yaml:"max_output_bytes"`
	// AllowRawShell is the global policy toggle for raw_shell catalog
	// entries; individual runs may only relax safety when this is true.
	AllowRawShell bool `yaml:"allow_raw_shell"`
}

// HistorySettings controls chain-run persistence.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
}
