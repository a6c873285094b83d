package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/glabrego/griddit/internal/app"
	"github.com/glabrego/griddit/internal/config"
	"github.com/glabrego/griddit/internal/download"
	"github.com/glabrego/griddit/internal/reddit"
	"github.com/glabrego/griddit/internal/storage"
	"github.com/glabrego/griddit/internal/tui"
)

func main() {
	exportPath := flag.String("export", "", "write a backup of settings, saved posts and follows to this file and exit")
	importPath := flag.String("import", "", "restore a backup from this file and exit")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("config error: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("invalid GRIDDIT_LOG_LEVEL: %v", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		stdlog.Fatalf("storage init error: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := store.Init(ctx); err != nil {
		stdlog.Fatalf("storage schema error: %v", err)
	}

	downloader := download.NewDownloader(cfg.DownloadDir, nil)
	service := app.NewService(store, downloader)

	if *exportPath != "" {
		if err := runExport(ctx, service, *exportPath); err != nil {
			stdlog.Fatalf("export error: %v", err)
		}
		return
	}
	if *importPath != "" {
		if err := runImport(ctx, service, *importPath); err != nil {
			stdlog.Fatalf("import error: %v", err)
		}
		fmt.Println("backup imported")
		return
	}

	settings, err := service.Settings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load settings (%v), using defaults\n", err)
		settings = storage.DefaultSettings()
	}

	client := reddit.NewClient(cfg.APIBaseURL, nil)
	model := tui.NewModel(service, client, reddit.ParseTarget(cfg.Target), cfg.Sort, settings)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		stdlog.Fatalf("tui error: %v", err)
	}
}

func runExport(ctx context.Context, service *app.Service, path string) error {
	if path == "-" {
		return service.ExportBackup(ctx, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()
	return service.ExportBackup(ctx, f)
}

func runImport(ctx context.Context, service *app.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()
	return service.ImportBackup(ctx, f)
}
