package assets

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/Levipasha/retrend/internal/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ObjectPutter is the subset of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures an S3Uploader.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURL is the base objects are served from. Defaults to the
	// bucket's virtual-hosted endpoint.
	PublicURL    string
	MaxDimension int
}

// S3Uploader stores images in an S3 bucket.
type S3Uploader struct {
	client ObjectPutter
	cfg    S3Config
	logger logrus.FieldLogger
}

// NewS3Uploader creates an uploader with an SDK client built from cfg.
// Static credentials are used when both keys are set; otherwise the default
// AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg S3Config, logger logrus.FieldLogger) (*S3Uploader, error) {
	loadOpts := []func(*aws_config.LoadOptions) error{
		aws_config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, aws_config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := aws_config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client.
func NewS3UploaderWithClient(client ObjectPutter, cfg S3Config, logger logrus.FieldLogger) *S3Uploader {
	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Uploader{
		client: client,
		cfg:    cfg,
		logger: logging.OrDiscard(logger).WithField("component", "assets"),
	}
}

// Upload puts the file under uploads/<uuid>_<name> and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, filePath string) (string, error) {
	img, err := prepareImage(filePath, u.cfg.MaxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	key := path.Join("uploads", uuid.NewString()+"_"+img.Filename)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", ErrUploadFailed, key, err)
	}

	u.logger.WithFields(logrus.Fields{"key": key, "bytes": len(img.Data)}).Info("image stored")
	return u.cfg.PublicURL + "/" + key, nil
}
