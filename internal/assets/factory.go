package assets

import (
	"context"

	"github.com/Levipasha/retrend/internal/config"
	"github.com/sirupsen/logrus"
)

// NewFromConfig builds the uploader selected by cfg.AssetProvider.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (Uploader, error) {
	if cfg.AssetProvider == config.AssetProviderS3 {
		return NewS3Uploader(ctx, S3Config{
			Region:          cfg.AwsRegion,
			Bucket:          cfg.AwsS3Bucket,
			AccessKeyID:     cfg.AwsAccessKeyID,
			SecretAccessKey: cfg.AwsSecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
			MaxDimension:    cfg.ImageMaxDimension,
		}, logger)
	}

	return NewCloudinaryUploader(cfg.AssetHostURL, cfg.UploadPreset,
		WithMaxDimension(cfg.ImageMaxDimension),
		WithLogger(logger),
	), nil
}
