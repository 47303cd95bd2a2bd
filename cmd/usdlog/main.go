// usdlog exports scene files to a visualization log, either as a
// one-shot recording or continuously while the scene file changes.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/art-e-fact/usd-rerun-logger/internal/config"
	"github.com/art-e-fact/usd-rerun-logger/internal/emitter"
	"github.com/art-e-fact/usd-rerun-logger/internal/geometry"
	"github.com/art-e-fact/usd-rerun-logger/internal/logger"
	"github.com/art-e-fact/usd-rerun-logger/pkg/usd"
	"github.com/art-e-fact/usd-rerun-logger/pkg/vizlog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "record":
		cmdRecord(args)
	case "watch":
		cmdWatch(args)
	case "info":
		cmdInfo(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`usdlog - scene to visualization log exporter

Usage:
  usdlog <command> [options]

Commands:
  record [options]       Export the scene once and write the recording
  watch [options]        Re-export whenever the scene file changes
  info <scene.yaml>      Show scene statistics
  init-config [path]     Write a default config file

Options (record, watch):
  -config <file>         Config file (default: usdlog.yaml if present)
  -scene <file>          Scene file to export
  -save <file>           Write the recording to a JSONL file
  -remote <url>          Stream the recording to a websocket URL
  -app <id>              Recording application id
  -filter <globs>        Comma separated prim path globs to keep
  -log-level <level>     debug, info, warn or error
  -log-file <file>       Write diagnostics to a file

Examples:
  usdlog record -scene scenes/arm.yaml -save arm.jsonl
  usdlog watch -scene scenes/arm.yaml -remote ws://localhost:9876
  usdlog info scenes/arm.yaml`)
}

func cmdRecord(args []string) {
	cfg, log := setup("record", args)
	defer log.Sync()

	stage, rec, sl := startSession(cfg, log)
	defer rec.Close()

	rec.SetTimeSequence(cfg.Output.Timeline, 0)
	if err := sl.LogStage(); err != nil {
		log.Fatal("export failed", zap.Error(err))
	}

	log.Info("scene exported",
		zap.String("scene", cfg.Scene.Path),
		zap.Int("prims", len(stage.Traverse())),
		zap.String("recording", rec.ApplicationID()))
}

func cmdWatch(args []string) {
	cfg, log := setup("watch", args)
	defer log.Sync()

	_, rec, sl := startSession(cfg, log)
	defer rec.Close()

	rec.SetTimeSequence(cfg.Output.Timeline, 0)
	if err := sl.LogStage(); err != nil {
		log.Fatal("initial export failed", zap.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("watcher", zap.Error(err))
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(cfg.Scene.Path)); err != nil {
		log.Fatal("watch scene dir", zap.Error(err))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info("watching scene", zap.String("scene", cfg.Scene.Path))
	var seq int64
	for {
		select {
		case event := <-watcher.Events:
			if !sameFile(event.Name, cfg.Scene.Path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Editors often fire several events per save.
			time.Sleep(50 * time.Millisecond)
			drainEvents(watcher)

			stage, err := usd.LoadStage(cfg.Scene.Path)
			if err != nil {
				log.Warn("scene reload failed", zap.Error(err))
				continue
			}
			seq++
			rec.SetTimeSequence(cfg.Output.Timeline, seq)
			sl.SetStage(stage)
			sl.ClearLoggedGeometry()
			if err := sl.LogStage(); err != nil {
				log.Warn("export failed", zap.Error(err))
				continue
			}
			log.Info("scene re-exported", zap.Int64("sequence", seq))
		case err := <-watcher.Errors:
			log.Warn("watcher error", zap.Error(err))
		case <-stop:
			log.Info("stopping")
			return
		}
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: usdlog info <scene.yaml>")
		os.Exit(1)
	}

	stage, err := usd.LoadStage(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var meshes, cubes, subsets, triangles int
	prims := stage.Traverse()
	for _, prim := range prims {
		switch {
		case prim.IsMesh() && prim.Mesh != nil:
			meshes++
			result := geometry.Flatten(prim.Mesh)
			triangles += len(result.Triangles)
			subsets += len(prim.Mesh.Subsets)
		case prim.IsCube():
			cubes++
		}
	}

	fmt.Printf("Scene: %s\n", args[0])
	fmt.Printf("  Prims:     %d\n", len(prims))
	fmt.Printf("  Meshes:    %d\n", meshes)
	fmt.Printf("  Cubes:     %d\n", cubes)
	fmt.Printf("  Subsets:   %d\n", subsets)
	fmt.Printf("  Triangles: %d\n", triangles)
}

func cmdInitConfig(args []string) {
	path := "usdlog.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Refusing to overwrite %s\n", path)
		os.Exit(1)
	}
	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// setup parses the shared flags and applies them over the loaded
// config.
func setup(name string, args []string) (*config.Config, *zap.Logger) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flags.Apply(cfg)

	if cfg.Scene.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: no scene file (use -scene or set scene.path in the config)")
		os.Exit(1)
	}

	var log *zap.Logger
	if cfg.Logging.LogFile != "" {
		log = logger.NewWithFile(cfg.Logging.Level, cfg.Logging.LogFile)
	} else {
		log = logger.New(cfg.Logging.Level)
	}
	return cfg, log
}

// startSession loads the scene, opens the sink and attaches the stage
// logger to a fresh recording.
func startSession(cfg *config.Config, log *zap.Logger) (*usd.Stage, *vizlog.Recording, *emitter.StageLogger) {
	stage, err := usd.LoadStage(cfg.Scene.Path)
	if err != nil {
		log.Fatal("load scene", zap.Error(err))
	}

	sink, err := openSink(cfg)
	if err != nil {
		log.Fatal("open sink", zap.Error(err))
	}

	rec, err := vizlog.NewRecording(cfg.Output.ApplicationID, sink)
	if err != nil {
		log.Fatal("create recording", zap.Error(err))
	}

	filter, err := usd.NewPathFilter(cfg.Scene.PathFilters)
	if err != nil {
		log.Fatal("bad path filter", zap.Error(err))
	}

	sl := emitter.New(
		emitter.WithLogger(log),
		emitter.WithPathFilter(filter),
	)
	if err := sl.Initialize(stage, rec); err != nil {
		log.Fatal("initialize", zap.Error(err))
	}
	return stage, rec, sl
}

func openSink(cfg *config.Config) (vizlog.Sink, error) {
	if cfg.Output.RemoteURL != "" {
		return vizlog.DialWebSocket(cfg.Output.RemoteURL)
	}
	if cfg.Output.SavePath != "" {
		return vizlog.NewFileSink(cfg.Output.SavePath)
	}
	return nil, fmt.Errorf("no output configured: set -save or -remote")
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == bb
}

func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}
