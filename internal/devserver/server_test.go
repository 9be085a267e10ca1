package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Levipasha/retrend/internal/api"
	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/geocode"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	s := New(opts...)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	s.SetPublicURL(ts.URL)
	return s, ts
}

func TestWishlist_RequiresToken(t *testing.T) {
	_, ts := startServer(t,
		WithTokens("good"),
		WithWishlist("good", models.Product{ID: "w1", Title: "Guitar"}),
	)

	items, err := api.NewClient("good", api.WithBaseURL(ts.URL)).ListWishlist(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Guitar", items[0].Title)

	_, err = api.NewClient("bad", api.WithBaseURL(ts.URL)).ListWishlist(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestGetProducts_FiltersByLocation(t *testing.T) {
	_, ts := startServer(t, WithProducts(
		models.Product{ID: "1", Title: "Sofa", Address: "Koramangala, Bengaluru, Karnataka"},
		models.Product{ID: "2", Title: "Bike", Address: "Andheri, Mumbai, Maharashtra"},
	))
	client := api.NewClient("", api.WithBaseURL(ts.URL))

	all, err := client.GetProducts(context.Background(), "India")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mumbai, err := client.GetProducts(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.Len(t, mumbai, 1)
	assert.Equal(t, "Bike", mumbai[0].Title)
}

func TestGeocoder_SearchAndReverse(t *testing.T) {
	_, ts := startServer(t)
	g := geocode.NewClient(geocode.WithBaseURL(ts.URL), geocode.WithRateLimit(0))

	suggestions, err := g.Search(context.Background(), "bengaluru")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), geocode.MaxSuggestions)
	assert.Equal(t, "Koramangala, Bengaluru, Karnataka", suggestions[0].DisplayName)

	addr, err := g.Reverse(context.Background(), models.Coordinates{Lat: 19.06, Lng: 72.83})
	require.NoError(t, err)
	assert.Equal(t, "Bandra West", geocode.PlaceName(addr, "India"))
}

func TestUpload_ServesAsset(t *testing.T) {
	s, ts := startServer(t)

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("not really a photo"), 0o644))

	url, err := assets.NewCloudinaryUploader(ts.URL, "random").Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.UploadCount())

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = assets.NewCloudinaryUploader(ts.URL, "").Upload(context.Background(), path)
	assert.ErrorIs(t, err, assets.ErrUploadFailed)
}

func TestSellFlow_EndToEnd(t *testing.T) {
	s, ts := startServer(t, WithTokens("tok"))

	dir := t.TempDir()
	photo := filepath.Join(dir, "phone.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg bytes"), 0o644))

	form := sell.NewForm(catalog.Default(), "Mobiles", "Mobile Phones")
	require.NoError(t, form.Apply(sell.DetailsChanged{Title: "Phone", Description: "Used"}))
	require.NoError(t, form.Apply(sell.PriceChanged{Price: "100"}))
	require.NoError(t, form.Apply(sell.AddressChanged{Mode: sell.ModeAddress, Address: "Indiranagar, Bengaluru"}))
	require.NoError(t, form.Apply(sell.ReviewerChanged{Name: "Alice"}))
	slot, err := form.AddImageSlot()
	require.NoError(t, err)
	require.NoError(t, form.SetImage(slot, photo))

	submitter := sell.NewSubmitter(
		api.NewClient("tok", api.WithBaseURL(ts.URL)),
		assets.NewCloudinaryUploader(ts.URL, "random"),
		nil,
	)
	require.NoError(t, form.Submit(context.Background(), submitter))
	assert.Equal(t, sell.StatusRedirect, form.Status())

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Mobiles", products[0].Category)
	assert.Equal(t, "Mobile Phones", products[0].Subcategory)
	assert.Equal(t, models.Price("100"), products[0].Price)
	require.Len(t, products[0].UploadedFiles, 1)
	assert.True(t, assets.IsUploaded(products[0].UploadedFiles[0]))
	assert.Equal(t, 1, s.UploadCount())
}

func TestAddProduct_Validation(t *testing.T) {
	_, ts := startServer(t)
	client := api.NewClient("any", api.WithBaseURL(ts.URL))

	_, err := client.AddProduct(context.Background(), models.ProductPayload{Title: "x"})
	assert.ErrorIs(t, err, api.ErrBadRequest)

	_, err = api.NewClient("", api.WithBaseURL(ts.URL)).AddProduct(context.Background(), models.ProductPayload{})
	assert.ErrorIs(t, err, api.ErrNoSession)
}

func TestMatchesLocation(t *testing.T) {
	assert.True(t, matchesLocation("anything", ""))
	assert.True(t, matchesLocation("anything", "india"))
	assert.True(t, matchesLocation("12 MG Road, Bengaluru", "Indiranagar, Bengaluru, Karnataka"))
	assert.False(t, matchesLocation("Andheri, Mumbai", "Koramangala, Bengaluru"))
}
