package main

import (
	"fmt"
	"os"

	"simpletodo/internal/config"
	"simpletodo/internal/logging"
	"simpletodo/internal/storage"
	"simpletodo/internal/theme"
	"simpletodo/internal/todo"
	"simpletodo/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := logging.OpenFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.Info("starting", "config", configPath, "db", cfg.DBPath)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fallback, err := theme.Parse(cfg.Theme)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	themes := theme.NewProvider(db, fallback, logger.WithPrefix("theme"))

	notices := &ui.Notices{}
	store := todo.NewStore(db,
		todo.WithKey(cfg.StorageKey),
		todo.WithNotifier(notices),
		todo.WithLogger(logger.WithPrefix("store")),
	)
	if err := store.Load(); err != nil {
		logger.Error("load todos", "err", err)
	}

	if err := ui.Run(store, notices, themes, cfg, logger.WithPrefix("ui")); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
