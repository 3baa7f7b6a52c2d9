// Package main runs the TrainSphere MCP server over stdio. It speaks to the
// data either directly (local database) or through the REST API of a running
// instance, selected by the -remote flag.
package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/trainsphere/internal/config"
	"github.com/meltforce/trainsphere/internal/mcp"
	"github.com/meltforce/trainsphere/internal/progress"
	"github.com/meltforce/trainsphere/internal/report"
	"github.com/meltforce/trainsphere/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	remote := flag.String("remote", "", "base URL of a running TrainSphere instance (empty = local database)")
	flag.Parse()

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote, os.Getenv("TRAINSPHERE_AUTH_API_KEY"))
		log.Info("using remote data source", "url", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.Open(cfg.Database.Path)
		if err != nil {
			log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}

		ds = mcp.NewLocal(db, progress.New(db, log), report.New(db, log, cfg.Report.WorkoutLimit))
		log.Info("using local data source", "path", cfg.Database.Path)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}
