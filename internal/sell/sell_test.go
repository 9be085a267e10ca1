package sell

import (
	"context"
	"errors"
	"testing"

	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type mockPoster struct {
	mock.Mock
}

func (m *mockPoster) AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	args := m.Called(ctx, payload)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func filledForm(t *testing.T, category, item string) *Form {
	t.Helper()
	f := NewForm(catalog.Default(), category, item)
	require.NoError(t, f.Apply(DetailsChanged{Title: "Phone", Description: "Used"}))
	require.NoError(t, f.Apply(PriceChanged{Price: "100"}))
	require.NoError(t, f.Apply(AddressChanged{Mode: ModeLocation, Location: "Koramangala, Bengaluru, Karnataka"}))
	require.NoError(t, f.Apply(ReviewerChanged{Name: "Alice"}))
	slot, err := f.AddImageSlot()
	require.NoError(t, err)
	require.NoError(t, f.SetImage(slot, "/tmp/phone.jpg"))
	return f
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "", StatusIdle.String())
	assert.Equal(t, "post", StatusPost.String())
	assert.Equal(t, "redirect", StatusRedirect.String())
}

func TestValidate_CollectsEveryRule(t *testing.T) {
	err := Validate(Draft{Mode: ModeAddress}, true)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{
		MsgTitle, MsgDescription, MsgAddress, MsgImage, MsgName, MsgPrice, MsgVehicle,
	}, verrs)
}

func TestValidate_AddressFollowsMode(t *testing.T) {
	base := Draft{
		Title: "t", Description: "d", Price: "1", Name: "n",
		Images: []string{"/tmp/a.jpg"},
	}

	tests := []struct {
		name    string
		mode    AddressMode
		address string
		loc     string
		wantErr bool
	}{
		{"address mode with address", ModeAddress, "12 MG Road", "", false},
		{"address mode with only location", ModeAddress, "", "Indiranagar", true},
		{"location mode with location", ModeLocation, "", "Indiranagar", false},
		{"location mode with only address", ModeLocation, "12 MG Road", "", true},
		{"unset mode uses address", "", "12 MG Road", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Mode, d.Address, d.Location = tt.mode, tt.address, tt.loc
			err := Validate(d, false)
			if tt.wantErr {
				assert.Equal(t, ValidationErrors{MsgAddress}, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_EmptySlotsDontCount(t *testing.T) {
	d := Draft{Title: "t", Description: "d", Price: "1", Name: "n", Address: "a", Images: []string{"", ""}}
	assert.Equal(t, ValidationErrors{MsgImage}, Validate(d, false))
}

func TestForm_MobilesScenario(t *testing.T) {
	f := filledForm(t, "Mobiles", "Mobile Phones")
	require.True(t, f.Known())
	assert.False(t, f.IsVehicle())
	assert.Equal(t, StatusIdle, f.Status())

	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/phone.jpg").Return("https://cdn/phone.jpg", nil).Once()

	poster := &mockPoster{}
	poster.On("AddProduct", mock.Anything, mock.MatchedBy(func(p models.ProductPayload) bool {
		return p.Category == "Mobiles" &&
			p.Subcategory == "Mobile Phones" &&
			p.Title == "Phone" &&
			p.Description == "Used" &&
			p.Price == "100" &&
			p.Name == "Alice" &&
			p.Address == "Koramangala, Bengaluru, Karnataka" &&
			len(p.UploadedFiles) == 1 && p.UploadedFiles[0] == "https://cdn/phone.jpg" &&
			p.Image == ""
	})).Return(&models.Product{ID: "p1"}, nil).Once()

	draft, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, StatusPost, f.Status())

	r := NewSubmitter(poster, up, nil).Submit(context.Background(), draft)
	require.NoError(t, r.Err)
	assert.Equal(t, "p1", r.Product.ID)

	f.Complete(r)
	assert.Equal(t, StatusRedirect, f.Status())

	up.AssertExpectations(t)
	poster.AssertExpectations(t)
}

func TestForm_VehicleCategoryRequiresVehicleDetails(t *testing.T) {
	f := filledForm(t, "Bikes", "Scooters")
	require.True(t, f.IsVehicle())

	up := &mockUploader{}
	poster := &mockPoster{}

	err := f.Submit(context.Background(), NewSubmitter(poster, up, nil))

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, MsgVehicle)
	assert.Equal(t, StatusIdle, f.Status())
	up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	poster.AssertNotCalled(t, "AddProduct", mock.Anything, mock.Anything)

	require.NoError(t, f.Apply(VehicleChanged{Vehicle: models.VehicleData{Brand: "Honda", Model: "Activa", VehicleType: "Scooter"}}))
	_, err = f.Begin()
	assert.NoError(t, err)
}

func TestForm_NonVehicleIgnoresVehicleDetails(t *testing.T) {
	f := filledForm(t, "Furniture", "Sofa & Dining")
	require.NoError(t, f.Apply(CategoryDataChanged{Data: map[string]string{"material": "Wood"}}))

	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/phone.jpg").Return("https://cdn/sofa.jpg", nil)
	poster := &mockPoster{}
	poster.On("AddProduct", mock.Anything, mock.MatchedBy(func(p models.ProductPayload) bool {
		return p.CategoryData["material"] == "Wood" && !p.VehicleData.IsComplete()
	})).Return(&models.Product{}, nil)

	require.NoError(t, f.Submit(context.Background(), NewSubmitter(poster, up, nil)))
	assert.Equal(t, StatusRedirect, f.Status())
}

func TestForm_UnknownCategory(t *testing.T) {
	f := NewForm(catalog.Default(), "Spaceships", "Rockets")
	assert.False(t, f.Known())

	_, err := f.Begin()
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, StatusIdle, f.Status())
}

func TestForm_FailureReturnsToIdleAndResubmitReusesUploads(t *testing.T) {
	f := filledForm(t, "Mobiles", "Tablets")
	slot, err := f.AddImageSlot()
	require.NoError(t, err)
	require.NoError(t, f.SetImage(slot, "/tmp/back.jpg"))
	require.NoError(t, f.Apply(ReviewerChanged{Name: "Alice", Photo: "/tmp/me.jpg"}))

	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/phone.jpg").Return("https://cdn/phone.jpg", nil).Once()
	up.On("Upload", mock.Anything, "/tmp/back.jpg").Return("https://cdn/back.jpg", nil).Once()
	up.On("Upload", mock.Anything, "/tmp/me.jpg").Return("https://cdn/me.jpg", nil).Once()

	poster := &mockPoster{}
	poster.On("AddProduct", mock.Anything, mock.Anything).Return(nil, errors.New("502")).Once()

	s := NewSubmitter(poster, up, nil)
	err = f.Submit(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, StatusIdle, f.Status())

	d := f.Draft()
	assert.Equal(t, []string{"https://cdn/phone.jpg", "https://cdn/back.jpg"}, d.Images)
	assert.Equal(t, "https://cdn/me.jpg", d.ProfileImage)
	assert.Equal(t, "Phone", d.Title)
	assert.Equal(t, "Alice", d.Name)

	poster.On("AddProduct", mock.Anything, mock.MatchedBy(func(p models.ProductPayload) bool {
		return len(p.UploadedFiles) == 2 && p.Image == "https://cdn/me.jpg"
	})).Return(&models.Product{}, nil).Once()

	require.NoError(t, f.Submit(context.Background(), s))
	assert.Equal(t, StatusRedirect, f.Status())

	// each local file was uploaded exactly once across both attempts
	up.AssertNumberOfCalls(t, "Upload", 3)
	poster.AssertExpectations(t)
}

func TestForm_UploadFailureSkipsPost(t *testing.T) {
	f := filledForm(t, "Mobiles", "Mobile Phones")

	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/phone.jpg").Return("", errors.New("host down"))
	poster := &mockPoster{}

	err := f.Submit(context.Background(), NewSubmitter(poster, up, nil))
	require.Error(t, err)
	assert.Equal(t, StatusIdle, f.Status())
	assert.Equal(t, []string{"/tmp/phone.jpg"}, f.Draft().Images)
	poster.AssertNotCalled(t, "AddProduct", mock.Anything, mock.Anything)
}

func TestForm_ImageSlots(t *testing.T) {
	f := NewForm(catalog.Default(), "Mobiles", "Mobile Phones")

	for i := 0; i < MaxImages; i++ {
		slot, err := f.AddImageSlot()
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}

	_, err := f.AddImageSlot()
	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Len(t, f.Draft().Images, MaxImages)

	assert.ErrorIs(t, f.SetImage(MaxImages, "/tmp/x.jpg"), ErrNoSuchSlot)
	assert.ErrorIs(t, f.SetImage(-1, "/tmp/x.jpg"), ErrNoSuchSlot)
}

func TestForm_RejectsChangesWhilePosting(t *testing.T) {
	f := filledForm(t, "Mobiles", "Mobile Phones")
	_, err := f.Begin()
	require.NoError(t, err)

	assert.ErrorIs(t, f.Apply(PriceChanged{Price: "5"}), ErrSubmitting)
	assert.ErrorIs(t, f.SetImage(0, "/tmp/other.jpg"), ErrSubmitting)
	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrSubmitting)
}

func TestDraft_CloneIsDeep(t *testing.T) {
	d := Draft{Images: []string{"a"}, CategoryData: map[string]string{"k": "v"}}
	c := d.Clone()
	c.Images[0] = "b"
	c.CategoryData["k"] = "w"

	assert.Equal(t, "a", d.Images[0])
	assert.Equal(t, "v", d.CategoryData["k"])
}

func TestDraft_PayloadSkipsEmptySlots(t *testing.T) {
	d := Draft{Mode: ModeAddress, Address: "12 MG Road", Location: "ignored"}
	p := d.Payload([]string{"https://cdn/a.jpg", "", "https://cdn/b.jpg"}, "")

	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, p.UploadedFiles)
	assert.Equal(t, "12 MG Road", p.Address)
	assert.NotNil(t, p.CategoryData)
}
