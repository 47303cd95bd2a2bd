package config

import (
	"flag"
	"strings"
)

// Flags carries the command line overrides shared by the subcommands.
type Flags struct {
	ConfigPath string
	ScenePath  string
	SavePath   string
	RemoteURL  string
	AppID      string
	Filters    string
	LogLevel   string
	LogFile    string
}

// Register attaches the flags to the given FlagSet. Zero values mean
// "not set" and leave the config layer untouched.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "path to a config file")
	fs.StringVar(&f.ScenePath, "scene", "", "scene file to export")
	fs.StringVar(&f.SavePath, "save", "", "write the recording to a JSONL file")
	fs.StringVar(&f.RemoteURL, "remote", "", "stream the recording to a websocket URL")
	fs.StringVar(&f.AppID, "app", "", "recording application id")
	fs.StringVar(&f.Filters, "filter", "", "comma separated prim path globs to keep")
	fs.StringVar(&f.LogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "write diagnostics to a file instead of stderr")
}

// Apply layers the set flags on top of cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.ScenePath != "" {
		cfg.Scene.Path = f.ScenePath
	}
	if f.SavePath != "" {
		cfg.Output.SavePath = f.SavePath
	}
	if f.RemoteURL != "" {
		cfg.Output.RemoteURL = f.RemoteURL
	}
	if f.AppID != "" {
		cfg.Output.ApplicationID = f.AppID
	}
	if f.Filters != "" {
		cfg.Scene.PathFilters = splitFilters(f.Filters)
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}

func splitFilters(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
