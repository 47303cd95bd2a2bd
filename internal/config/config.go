// Package config holds the exporter settings with a layered override
// chain: built-in defaults, then an optional YAML file, then flags.
package config

// Config is the root of the exporter configuration tree.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig selects where entries go and how the recording is named.
type OutputConfig struct {
	// ApplicationID is the base name of the recording; a random
	// suffix is appended per session.
	ApplicationID string `yaml:"application_id"`
	// SavePath, when set, writes entries to a JSONL file.
	SavePath string `yaml:"save_path"`
	// RemoteURL, when set, streams entries over a websocket
	// (ws:// or wss://). Takes precedence over SavePath.
	RemoteURL string `yaml:"remote_url"`
	// Timeline names the sequence timeline entries are stamped with.
	Timeline string `yaml:"timeline"`
}

// SceneConfig points at the scene to export.
type SceneConfig struct {
	Path string `yaml:"path"`
	// PathFilters keeps only prims whose path matches one of the
	// glob patterns. Empty means everything.
	PathFilters []string `yaml:"path_filters"`
}

// LoggingConfig controls the diagnostic log, not the recording.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration used when no file or flags
// override it.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			ApplicationID: "usd_rerun_logger",
			SavePath:      "recording.jsonl",
			Timeline:      "clock",
		},
		Scene: SceneConfig{},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
