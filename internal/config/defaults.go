package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Protected: []string{},
			Restore: RestoreConfig{
				Verbose: true,
				Confirm: true,
			},
			Empty: EmptyConfig{
				Confirm: true,
			},
			Logging: LoggingConfig{
				Enabled: true,
				Level:   "debug",
			},
		},
		UI: UI{
			Density:     "spacious",
			ExitMessage: "bye!",
			Paginator:   "dots",
			Style: StyleConfig{
				ListView: ListViewConfig{
					Cursor:   "#AD58B4",
					Selected: "#5FB458",
				},
			},
		},
		Filter: Filter{
			Include: IncludeConfig{
				Period: 365,
			},
			Exclude: ExcludeConfig{
				Files: []string{
					// Finder metadata alongside real files on macOS volumes
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
				Size: SizeConfig{
					Min: "0KB",
					Max: "10GB",
				},
			},
		},
	}
}
