package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jscyril/grootman/internal/audio"
	"github.com/jscyril/grootman/internal/catalog"
	"github.com/jscyril/grootman/internal/config"
	"github.com/jscyril/grootman/internal/player"
	"github.com/jscyril/grootman/internal/ui"
	"github.com/jscyril/grootman/pkg/events"
)

type options struct {
	album      string
	catalogURL string
	configPath string
	volume     int
	logLevel   string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "grootman [album]",
		Short:         "Play a song collection in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("album") {
				opts.album = args[0]
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.album, "album", "", "Collection to load (default collection when empty)")
	flags.StringVar(&opts.catalogURL, "catalog", "", "Catalog base URL or directory")
	flags.StringVar(&opts.configPath, "config", config.GetConfigPath(), "Path to the configuration file (.json, .yaml)")
	flags.IntVar(&opts.volume, "volume", player.DefaultVolume, "Initial volume (0-100)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level [debug, info, warn, error]")
	return cmd
}

// loadConfig applies file, environment and flags in increasing priority
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if opts.album != "" {
		cfg.Album = opts.album
	}
	if flags.Changed("catalog") {
		cfg.CatalogURL = opts.catalogURL
	}
	if flags.Changed("volume") {
		cfg.DefaultVolume = opts.volume
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, cfg.Validate()
}

// setupLogging sends logs to a file since the terminal belongs to the UI
func setupLogging(cfg *config.Config) (*os.File, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: %w", err)
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return f, nil
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log.WithFields(log.Fields{
		"catalog": cfg.CatalogURL,
		"album":   cfg.Album,
	}).Info("Starting")

	bus := events.NewEventBus()
	defer bus.Close()
	audioEvents := bus.SubscribeAll()

	engine := audio.NewEngine(bus, audio.WithLogger(log.WithField("component", "audio")))
	controller := player.NewController(engine,
		player.WithVolume(cfg.DefaultVolume),
		player.WithLogger(log.WithField("component", "player")),
	)
	defer controller.Close()

	loader := catalog.NewLoader(cfg.CatalogURL, catalog.WithLogger(log.WithField("component", "catalog")))

	if err := ui.Run(ui.Deps{
		Controller: controller,
		Loader:     loader,
		Events:     audioEvents,
		Album:      cfg.Album,
		Featured:   cfg.Featured,
		Keys:       cfg.KeyBindings,
		Log:        log.WithField("component", "ui"),
	}); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
