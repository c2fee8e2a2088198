package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/gameline/internal/config"
	"github.com/sadopc/gameline/internal/lookup"
	"github.com/sadopc/gameline/internal/store"
	"github.com/sadopc/gameline/internal/tracker"
	"github.com/sadopc/gameline/internal/tui"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()
	s.SetLogger(logger)

	n := tui.NewNotifier()
	tr, err := tracker.New(s, n, tracker.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading library: %v\n", err)
		os.Exit(1)
	}

	client := lookup.New(cfg.Rawg.BaseURL, cfg.RawgTimeout())
	app := tui.NewApp(tr, client, n, tui.Options{
		ExportDir:  cfg.ExportDir,
		RawgAPIKey: cfg.Rawg.APIKey,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("starting", "config", cfg.Path, "db", cfg.DBPath)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
