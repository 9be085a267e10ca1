package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Levipasha/retrend/internal/api"
	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/config"
	"github.com/Levipasha/retrend/internal/geocode"
	"github.com/Levipasha/retrend/internal/geolocation"
	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/storage"
	"github.com/Levipasha/retrend/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	var store storage.Store
	keyring := storage.NewKeyringStore(cfg.KeyringService)
	if keyring.Available() {
		store = keyring
	} else {
		logger.Warn("system keyring unavailable, state will not persist")
		store = storage.NewMemoryStore()
	}

	uploader, err := assets.NewFromConfig(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up image uploads: %w", err)
	}

	app := tui.NewApp(tui.Deps{
		Config: cfg,
		Client: api.NewClient("",
			api.WithBaseURL(cfg.APIBaseURL),
			api.WithTimeout(cfg.HTTPTimeout),
			api.WithLogger(logger),
		),
		Geocoder: geocode.NewClient(
			geocode.WithBaseURL(cfg.GeocoderURL),
			geocode.WithCountryCodes(cfg.CountryCodes),
			geocode.WithRateLimit(cfg.GeocoderRPS),
			geocode.WithLogger(logger),
		),
		Locator:  geolocation.FromConfig(cfg.DeviceLat, cfg.DeviceLng),
		Store:    store,
		Uploader: uploader,
		Catalog:  catalog.Default(),
		Logger:   logger,
	})

	logger.WithField("api", cfg.APIBaseURL).Info("starting")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
