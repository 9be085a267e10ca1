package sell

import (
	"context"
	"fmt"

	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/sirupsen/logrus"
)

// FailureMessage is shown for any failed submit.
const FailureMessage = "Failed to post your ad. Please try again."

// ProductPoster creates a listing on the backend.
type ProductPoster interface {
	AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error)
}

// Result is the outcome of a submit. Images and ProfileImage hold the refs
// after upload, including any uploads that finished before a failure.
type Result struct {
	Images       []string
	ProfileImage string
	Product      *models.Product
	Err          error
}

// Submitter uploads a draft's photos and posts it.
type Submitter struct {
	poster   ProductPoster
	uploader assets.Uploader
	logger   logrus.FieldLogger
}

// NewSubmitter creates a Submitter.
func NewSubmitter(poster ProductPoster, uploader assets.Uploader, logger logrus.FieldLogger) *Submitter {
	return &Submitter{
		poster:   poster,
		uploader: uploader,
		logger:   logging.OrDiscard(logger).WithField("component", "sell"),
	}
}

// Submit uploads every photo that isn't hosted yet, then the profile photo,
// then posts the listing. The draft must already be valid.
func (s *Submitter) Submit(ctx context.Context, d Draft) Result {
	log := s.logger.WithFields(logrus.Fields{
		"category":    d.Category,
		"subcategory": d.Subcategory,
	})

	r := Result{ProfileImage: d.ProfileImage}

	images, err := assets.ResolveAll(ctx, s.uploader, d.Images)
	r.Images = images
	if err != nil {
		log.WithError(err).Error("photo upload failed")
		r.Err = fmt.Errorf("failed to upload photos: %w", err)
		return r
	}

	profile, err := assets.Resolve(ctx, s.uploader, d.ProfileImage)
	if err != nil {
		log.WithError(err).Error("profile photo upload failed")
		r.Err = fmt.Errorf("failed to upload profile photo: %w", err)
		return r
	}
	r.ProfileImage = profile

	product, err := s.poster.AddProduct(ctx, d.Payload(images, profile))
	if err != nil {
		log.WithError(err).Error("add product failed")
		r.Err = fmt.Errorf("failed to post listing: %w", err)
		return r
	}

	log.WithField("photos", len(d.ImageRefs())).Info("listing posted")
	r.Product = product
	return r
}
