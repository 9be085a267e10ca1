package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// preparedImage is an upload-ready file body.
type preparedImage struct {
	Filename    string
	ContentType string
	Data        []byte
	Resized     bool
}

// prepareImage reads path and, when maxDim > 0 and the image is larger than
// maxDim on either side, downscales it and re-encodes it as JPEG. Files that
// don't decode as images are passed through unchanged and left for the asset
// host to reject.
func prepareImage(path string, maxDim int) (*preparedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	img := &preparedImage{
		Filename:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		Data:        data,
	}
	if maxDim <= 0 {
		return img, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return img, nil
	}

	bounds := decoded.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img, nil
	}

	resized := resize.Thumbnail(uint(maxDim), uint(maxDim), decoded, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to re-encode resized image: %w", err)
	}

	img.Data = buf.Bytes()
	img.ContentType = "image/jpeg"
	img.Filename = strings.TrimSuffix(img.Filename, filepath.Ext(img.Filename)) + ".jpg"
	img.Resized = true
	return img, nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
