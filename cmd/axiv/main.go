// Package main is the entry point for Axiv.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"axiv-go/application"
	"axiv-go/application/viewer"
	"axiv-go/core/eventbus"
	"axiv-go/domain/album"
	domainhistory "axiv-go/domain/history"
	"axiv-go/infrastructure/config"
	"axiv-go/infrastructure/logging"
	"axiv-go/infrastructure/repository"
	"axiv-go/presentation"
	"axiv-go/resources"
)

var version = "0.3.0"

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "axiv [path]",
		Short: "Axiv is a keyboard-driven image viewer for directories",
		Long: `Axiv opens a directory of images and lets you flip through them with
the keyboard, preloading neighbors in the background. Pass a directory
or a single image file, or open one from the File menu.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
		// Usage noise on runtime errors helps nobody
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: XDG config dir)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("axiv %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = parseLogLevel(flagLogLevel)

	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer closeLog()

	logger.Info("Starting Axiv", "version", version)

	configPath := flagConfig
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	ctx := context.Background()

	// Local database for directory history
	db, err := repository.NewSQLite(ctx, repository.DefaultSQLiteConfig(), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	historyRepo := repository.NewSQLiteHistoryRepository(db, logger)
	historyService := domainhistory.NewService(historyRepo, cfg.HistoryLimit)

	eventBus := eventbus.New(100)
	defer eventBus.Close()

	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus: eventBus,
		History:  historyService,
		Viewer: viewer.Options{
			Extensions:        cfg.Extensions,
			Sort:              album.ParseSortOrder(cfg.SortOrder),
			PreloadWindow:     cfg.PreloadWindow,
			PreloadWorkers:    cfg.PreloadWorkers,
			SlideshowInterval: time.Duration(cfg.SlideshowIntervalMS) * time.Millisecond,
			ViewportWidth:     cfg.WindowWidth,
			ViewportHeight:    cfg.WindowHeight,
		},
		Logger: logger,
	})
	defer coordinator.Stop()

	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	fyneApp := app.New()
	fyneApp.SetIcon(resources.GetAppIcon())

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:     fyneApp,
		Bridge:  bridge,
		Config:  cfg,
		History: historyService,
		Logger:  logger,
	})
	defer mainWindow.Cleanup()

	if len(args) == 1 {
		mainWindow.OpenPath(args[0])
	}

	mainWindow.Show()
	fyneApp.Run()

	// Force exit if cleanup hangs
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
