package sell

import (
	"context"
	"errors"
	"fmt"

	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/models"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrTooManyImages   = fmt.Errorf("at most %d photos can be added", MaxImages)
	ErrNoSuchSlot      = errors.New("no such photo slot")
	ErrSubmitting      = errors.New("submit already in progress")
)

// Status is the submit lifecycle of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusPost
	StatusRedirect
)

func (s Status) String() string {
	switch s {
	case StatusPost:
		return "post"
	case StatusRedirect:
		return "redirect"
	default:
		return ""
	}
}

// Change is a value reported by one of the form's input widgets.
type Change interface {
	apply(d *Draft)
}

// DetailsChanged carries the title and description inputs.
type DetailsChanged struct {
	Title       string
	Description string
}

func (c DetailsChanged) apply(d *Draft) {
	d.Title = c.Title
	d.Description = c.Description
}

// PriceChanged carries the price input.
type PriceChanged struct {
	Price string
}

func (c PriceChanged) apply(d *Draft) { d.Price = c.Price }

// AddressChanged carries the address/location inputs and the selected mode.
type AddressChanged struct {
	Mode     AddressMode
	Address  string
	Location string
}

func (c AddressChanged) apply(d *Draft) {
	d.Mode = c.Mode
	d.Address = c.Address
	d.Location = c.Location
}

// VehicleChanged carries the vehicle selector.
type VehicleChanged struct {
	Vehicle models.VehicleData
}

func (c VehicleChanged) apply(d *Draft) { d.Vehicle = c.Vehicle }

// CategoryDataChanged carries the category-specific fields.
type CategoryDataChanged struct {
	Data map[string]string
}

func (c CategoryDataChanged) apply(d *Draft) {
	d.CategoryData = make(map[string]string, len(c.Data))
	for k, v := range c.Data {
		d.CategoryData[k] = v
	}
}

// ReviewerChanged carries the seller name and profile photo.
type ReviewerChanged struct {
	Name  string
	Photo string
}

func (c ReviewerChanged) apply(d *Draft) {
	d.Name = c.Name
	d.ProfileImage = c.Photo
}

// Form owns a draft for one category/item and drives its submission.
type Form struct {
	draft   Draft
	status  Status
	known   bool
	vehicle bool
}

// NewForm creates a form for category/item. The form is still returned for
// an unknown pair; Known reports false and it can't be submitted.
func NewForm(cat *catalog.Catalog, category, item string) *Form {
	return &Form{
		draft: Draft{
			Category:    category,
			Subcategory: item,
			Mode:        ModeAddress,
		},
		known:   cat.IsValid(category, item),
		vehicle: cat.IsVehicleCategory(category),
	}
}

// Known reports whether the form's category/item is in the catalog.
func (f *Form) Known() bool { return f.known }

// IsVehicle reports whether vehicle details are required.
func (f *Form) IsVehicle() bool { return f.vehicle }

// Status returns the submit lifecycle state.
func (f *Form) Status() Status { return f.status }

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft { return f.draft.Clone() }

// Apply records a widget change.
func (f *Form) Apply(c Change) error {
	if f.status == StatusPost {
		return ErrSubmitting
	}
	c.apply(&f.draft)
	return nil
}

// AddImageSlot appends an empty photo slot and returns its index.
func (f *Form) AddImageSlot() (int, error) {
	if len(f.draft.Images) >= MaxImages {
		return 0, ErrTooManyImages
	}
	f.draft.Images = append(f.draft.Images, "")
	return len(f.draft.Images) - 1, nil
}

// SetImage sets the ref of an existing photo slot.
func (f *Form) SetImage(slot int, ref string) error {
	if f.status == StatusPost {
		return ErrSubmitting
	}
	if slot < 0 || slot >= len(f.draft.Images) {
		return ErrNoSuchSlot
	}
	f.draft.Images[slot] = ref
	return nil
}

// Begin validates the draft and, when it passes, moves the form to
// StatusPost and returns the draft to submit. Validation failures are
// returned as ValidationErrors and leave the form idle.
func (f *Form) Begin() (Draft, error) {
	if !f.known {
		return Draft{}, ErrUnknownCategory
	}
	if f.status == StatusPost {
		return Draft{}, ErrSubmitting
	}
	if err := Validate(f.draft, f.vehicle); err != nil {
		return Draft{}, err
	}
	f.status = StatusPost
	return f.draft.Clone(), nil
}

// Complete records the outcome of a submit started with Begin. Hosted URLs
// in r replace the matching slot refs whether or not the submit succeeded.
func (f *Form) Complete(r Result) {
	for i, ref := range r.Images {
		if i < len(f.draft.Images) && assets.IsUploaded(ref) {
			f.draft.Images[i] = ref
		}
	}
	if assets.IsUploaded(r.ProfileImage) {
		f.draft.ProfileImage = r.ProfileImage
	}

	if r.Err != nil {
		f.status = StatusIdle
		return
	}
	f.status = StatusRedirect
}

// Submit runs Begin, the submitter and Complete in one call.
func (f *Form) Submit(ctx context.Context, s *Submitter) error {
	draft, err := f.Begin()
	if err != nil {
		return err
	}
	r := s.Submit(ctx, draft)
	f.Complete(r)
	return r.Err
}
