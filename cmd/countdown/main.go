package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"countdown/internal/cli"
	"countdown/internal/config"
	"countdown/internal/logger"
	"countdown/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	DB      string `help:"Override the data file (.json for a JSON file, anything else for SQLite)." type:"path"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`

	Tui    cli.TuiCmd    `cmd:"" help:"Open the countdown panel." default:"1"`
	List   cli.ListCmd   `cmd:"" help:"Print deadlines grouped by category."`
	Add    cli.AddCmd    `cmd:"" help:"Add a deadline."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a deadline."`
	Move   cli.MoveCmd   `cmd:"" help:"Move a deadline to another category."`

	Category struct {
		List   cli.CategoryListCmd   `cmd:"" help:"List categories with their deadline counts."`
		Delete cli.CategoryDeleteCmd `cmd:"" help:"Delete an empty category."`
	} `cmd:"" help:"Manage categories."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("countdown"),
		kong.Description("Deadline countdowns grouped by category"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     "v0.1.0",
			"config_path": config.ResolveConfigPath(),
		},
	)

	cfg, err := config.LoadOrCreate(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open store failed", "path", cfg.DBPath, "error", err)
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Cfg:   cfg,
		Out:   os.Stdout,
	}
	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}
