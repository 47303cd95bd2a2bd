package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.ApplicationID != "usd_rerun_logger" {
		t.Errorf("ApplicationID = %q, want usd_rerun_logger", cfg.Output.ApplicationID)
	}
	if cfg.Output.SavePath != "recording.jsonl" {
		t.Errorf("SavePath = %q, want recording.jsonl", cfg.Output.SavePath)
	}
	if cfg.Output.Timeline != "clock" {
		t.Errorf("Timeline = %q, want clock", cfg.Output.Timeline)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
	if len(cfg.Scene.PathFilters) != 0 {
		t.Errorf("PathFilters = %v, want empty", cfg.Scene.PathFilters)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/usdlog.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usdlog.yaml")
	content := `
output:
  application_id: robot_demo
  remote_url: ws://localhost:9876
scene:
  path: scenes/arm.yaml
  path_filters:
    - /World/Robot/*
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Output.ApplicationID != "robot_demo" {
		t.Errorf("ApplicationID = %q, want robot_demo", cfg.Output.ApplicationID)
	}
	if cfg.Output.RemoteURL != "ws://localhost:9876" {
		t.Errorf("RemoteURL = %q", cfg.Output.RemoteURL)
	}
	// Unset keys keep their defaults.
	if cfg.Output.SavePath != "recording.jsonl" {
		t.Errorf("SavePath = %q, want default preserved", cfg.Output.SavePath)
	}
	if cfg.Scene.Path != "scenes/arm.yaml" {
		t.Errorf("Scene.Path = %q", cfg.Scene.Path)
	}
	if len(cfg.Scene.PathFilters) != 1 || cfg.Scene.PathFilters[0] != "/World/Robot/*" {
		t.Errorf("PathFilters = %v", cfg.Scene.PathFilters)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usdlog.yaml")
	if err := os.WriteFile(path, []byte("output: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "scene and save",
			args: []string{"-scene", "world.yaml", "-save", "out.jsonl"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Path != "world.yaml" {
					t.Errorf("Scene.Path = %q", cfg.Scene.Path)
				}
				if cfg.Output.SavePath != "out.jsonl" {
					t.Errorf("SavePath = %q", cfg.Output.SavePath)
				}
			},
		},
		{
			name: "filters split and trimmed",
			args: []string{"-filter", "/World/*, /Props/?able ,"},
			check: func(t *testing.T, cfg *Config) {
				want := []string{"/World/*", "/Props/?able"}
				if len(cfg.Scene.PathFilters) != len(want) {
					t.Fatalf("PathFilters = %v, want %v", cfg.Scene.PathFilters, want)
				}
				for i := range want {
					if cfg.Scene.PathFilters[i] != want[i] {
						t.Errorf("filter[%d] = %q, want %q", i, cfg.Scene.PathFilters[i], want[i])
					}
				}
			},
		},
		{
			name: "unset flags keep defaults",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Output.ApplicationID != "usd_rerun_logger" {
					t.Errorf("ApplicationID = %q", cfg.Output.ApplicationID)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("Level = %q", cfg.Logging.Level)
				}
			},
		},
		{
			name: "logging overrides",
			args: []string{"-log-level", "warn", "-log-file", "diag.log"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "warn" {
					t.Errorf("Level = %q", cfg.Logging.Level)
				}
				if cfg.Logging.LogFile != "diag.log" {
					t.Errorf("LogFile = %q", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			var f Flags
			f.Register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			f.Apply(cfg)
			tt.check(t, cfg)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "usdlog.yaml")

	cfg := Default()
	cfg.Scene.Path = "demo.yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scene.Path != "demo.yaml" {
		t.Errorf("Scene.Path = %q, want demo.yaml", loaded.Scene.Path)
	}
	if loaded.Output.Timeline != "clock" {
		t.Errorf("Timeline = %q, want clock", loaded.Output.Timeline)
	}
}
