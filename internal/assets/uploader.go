package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/logging"
	"github.com/sirupsen/logrus"
)

const defaultUploadTimeout = 60 * time.Second

// ErrUploadFailed wraps every asset host failure.
var ErrUploadFailed = errors.New("image upload failed")

// Uploader stores a local image file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// IsUploaded reports whether ref is already a hosted URL rather than a local
// file that still needs uploading.
func IsUploaded(ref string) bool {
	return strings.HasPrefix(ref, "http")
}

// CloudinaryUploader posts files to an unsigned upload endpoint.
type CloudinaryUploader struct {
	hostURL      string
	uploadPreset string
	maxDimension int
	httpClient   *http.Client
	logger       logrus.FieldLogger
}

// CloudinaryOption configures a CloudinaryUploader.
type CloudinaryOption func(*CloudinaryUploader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) CloudinaryOption {
	return func(u *CloudinaryUploader) {
		u.httpClient = c
	}
}

// WithMaxDimension downscales images whose width or height exceeds px before
// upload. Zero disables downscaling.
func WithMaxDimension(px int) CloudinaryOption {
	return func(u *CloudinaryUploader) {
		u.maxDimension = px
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) CloudinaryOption {
	return func(u *CloudinaryUploader) {
		u.logger = l
	}
}

// NewCloudinaryUploader creates an uploader for hostURL (the account base,
// e.g. https://api.cloudinary.com/v1_1/<cloud>) using an unsigned preset.
func NewCloudinaryUploader(hostURL, uploadPreset string, opts ...CloudinaryOption) *CloudinaryUploader {
	u := &CloudinaryUploader{
		hostURL:      strings.TrimRight(hostURL, "/"),
		uploadPreset: uploadPreset,
		httpClient:   &http.Client{Timeout: defaultUploadTimeout},
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = logging.OrDiscard(u.logger).WithField("component", "assets")
	return u
}

// Upload sends the file at path to the asset host.
func (u *CloudinaryUploader) Upload(ctx context.Context, path string) (string, error) {
	img, err := prepareImage(path, u.maxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", img.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.hostURL+"/image/upload", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUploadFailed, err)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode >= 400 {
		msg := result.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, msg)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: response has no secure_url", ErrUploadFailed)
	}

	u.logger.WithFields(logrus.Fields{
		"file":    img.Filename,
		"bytes":   len(img.Data),
		"resized": img.Resized,
	}).Info("image uploaded")

	return result.SecureURL, nil
}
