package main

import (
	"fmt"
	"os"

	"taskpad/internal/config"
	"taskpad/internal/storage"
	"taskpad/internal/task"
	"taskpad/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// An empty db_path disables persistence; a broken database is degraded
	// mode. Neither is fatal.
	var gateway ui.Gateway
	store := task.NewStore(nil)
	if db, err := storage.Open(cfg.DBPath); err != nil {
		if cfg.DBPath != "" {
			fmt.Fprintf(os.Stderr, "warning: %v; continuing without persistence\n", err)
		}
	} else {
		defer db.Close()
		gateway = db
		tasks, err := db.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: initial load failed: %v\n", err)
		} else {
			store.Replace(tasks)
		}
	}

	if err := ui.Run(store, gateway, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}
