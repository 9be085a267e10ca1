// Command retrend-devserver runs an in-memory backend, geocoder and asset
// host for local development. Point the client at it with
//
//	RETREND_API_BASE_URL=http://127.0.0.1:8089
//	RETREND_GEOCODER_URL=http://127.0.0.1:8089
//	RETREND_ASSET_HOST_URL=http://127.0.0.1:8089
package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/config"
	"github.com/Levipasha/retrend/internal/devserver"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/sirupsen/logrus"
)

var sampleProducts = []models.Product{
	{
		ID:          "seed-1",
		Title:       "iPhone 12, 128GB",
		Description: "Two years old, battery at 88%.",
		Address:     "Koramangala, Bengaluru, Karnataka",
		Price:       "32000",
		Name:        "Asha",
		Category:    "Mobiles",
		Subcategory: "Mobile Phones",
	},
	{
		ID:          "seed-2",
		Title:       "Royal Enfield Classic 350",
		Description: "Single owner, serviced on time.",
		Address:     "Andheri West, Mumbai, Maharashtra",
		Price:       "145000",
		Name:        "Rahul",
		Category:    "Bikes",
		Subcategory: "Motorcycles",
		VehicleData: &models.VehicleData{Brand: "Royal Enfield", Model: "Classic 350", VehicleType: "Motorcycle"},
	},
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	tokens := strings.Split(envOr("RETREND_DEV_TOKENS", "dev-token"), ",")

	srv := devserver.New(
		devserver.WithTokens(tokens...),
		devserver.WithProducts(sampleProducts...),
		devserver.WithWishlist(tokens[0], sampleProducts[0]),
		devserver.WithLogger(logger),
	)
	srv.SetPublicURL("http://" + cfg.DevAddr)

	httpServer := &http.Server{
		Addr:              cfg.DevAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.WithField("addr", cfg.DevAddr).Info("dev server listening")
	if err := httpServer.ListenAndServe(); err != nil {
		logger.WithError(err).Fatal("dev server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
