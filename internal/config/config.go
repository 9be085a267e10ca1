package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Asset providers understood by the uploader factory.
const (
	AssetProviderCloudinary = "cloudinary"
	AssetProviderS3         = "s3"
)

// Config holds all configuration for the application.
type Config struct {
	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Geocoding
	GeocoderURL     string
	CountryCodes    string
	DefaultLocation string
	GeocoderRPS     float64

	// Device position used in place of a geolocation sensor
	DeviceLat *float64
	DeviceLng *float64

	// Asset host
	AssetProvider     string
	AssetHostURL      string
	UploadPreset      string
	ImageMaxDimension int

	// AWS S3 (AssetProvider == "s3")
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	S3PublicURL        string

	// Local state
	KeyringService string
	LogFile        string
	LogLevel       string

	// Dev backend
	DevAddr string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}
	var err error

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	cfg.APIBaseURL = strings.TrimRight(getEnv("RETREND_API_BASE_URL", "https://retrand4.onrender.com"), "/")
	cfg.GeocoderURL = strings.TrimRight(getEnv("RETREND_GEOCODER_URL", "https://nominatim.openstreetmap.org"), "/")
	cfg.CountryCodes = getEnv("RETREND_COUNTRY_CODES", "in")
	cfg.DefaultLocation = getEnv("RETREND_DEFAULT_LOCATION", "India")
	cfg.AssetProvider = strings.ToLower(getEnv("RETREND_ASSET_PROVIDER", AssetProviderCloudinary))
	cfg.AssetHostURL = strings.TrimRight(getEnv("RETREND_ASSET_HOST_URL", "https://api.cloudinary.com/v1_1/dlpjayfhf"), "/")
	cfg.UploadPreset = getEnv("RETREND_UPLOAD_PRESET", "random")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.S3PublicURL = strings.TrimRight(getEnv("RETREND_S3_PUBLIC_URL", ""), "/")
	cfg.KeyringService = getEnv("RETREND_KEYRING_SERVICE", "retrend")
	cfg.LogFile = getEnv("RETREND_LOG_FILE", defaultLogFile())
	cfg.LogLevel = getEnv("RETREND_LOG_LEVEL", "info")
	cfg.DevAddr = getEnv("RETREND_DEV_ADDR", "127.0.0.1:8089")

	if cfg.DefaultLocation == "" {
		return nil, fmt.Errorf("invalid RETREND_DEFAULT_LOCATION: must not be empty")
	}

	timeoutSeconds, err := strconv.Atoi(getEnv("RETREND_HTTP_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETREND_HTTP_TIMEOUT_SECONDS: %w", err)
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	cfg.GeocoderRPS, err = strconv.ParseFloat(getEnv("RETREND_GEOCODER_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RETREND_GEOCODER_RPS: %w", err)
	}

	cfg.ImageMaxDimension, err = strconv.Atoi(getEnv("RETREND_IMAGE_MAX_DIMENSION", "2048"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETREND_IMAGE_MAX_DIMENSION: %w", err)
	}

	if lat, lng := getEnv("RETREND_LAT", ""), getEnv("RETREND_LNG", ""); lat != "" && lng != "" {
		latV, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RETREND_LAT: %w", err)
		}
		lngV, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RETREND_LNG: %w", err)
		}
		cfg.DeviceLat = &latV
		cfg.DeviceLng = &lngV
	}

	switch cfg.AssetProvider {
	case AssetProviderCloudinary:
	case AssetProviderS3:
		if cfg.AwsS3Bucket == "" || cfg.AwsRegion == "" {
			return nil, fmt.Errorf("asset provider s3 requires AWS_S3_BUCKET and AWS_REGION")
		}
	default:
		return nil, fmt.Errorf("invalid RETREND_ASSET_PROVIDER: %q", cfg.AssetProvider)
	}

	return cfg, nil
}

// HasDevicePosition reports whether a fixed device position is configured.
func (c *Config) HasDevicePosition() bool {
	return c.DeviceLat != nil && c.DeviceLng != nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "retrend.log"
	}
	return filepath.Join(dir, "retrend", "retrend.log")
}
