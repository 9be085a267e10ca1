package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
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

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestIsUploaded(t *testing.T) {
	assert.True(t, IsUploaded("https://res.cloudinary.com/x.jpg"))
	assert.True(t, IsUploaded("http://localhost/x.jpg"))
	assert.False(t, IsUploaded("/home/me/x.jpg"))
	assert.False(t, IsUploaded(""))
}

func TestCloudinaryUploader_Upload(t *testing.T) {
	path := writePNG(t, t.TempDir(), "bike.png", 8, 8)

	var gotPreset, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/image/upload", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPreset = r.FormValue("upload_preset")
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		gotFile = header.Filename
		w.Write([]byte(`{"secure_url":"https://cdn.example/bike.png"}`))
	}))
	defer server.Close()

	up := NewCloudinaryUploader(server.URL+"/", "random")
	url, err := up.Upload(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/bike.png", url)
	assert.Equal(t, "random", gotPreset)
	assert.Equal(t, "bike.png", gotFile)
}

func TestCloudinaryUploader_Errors(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 4, 4)

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"host error", http.StatusBadRequest, `{"error":{"message":"Upload preset not found"}}`, "Upload preset not found"},
		{"missing url", http.StatusOK, `{}`, "no secure_url"},
		{"server error", http.StatusBadGateway, ``, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewCloudinaryUploader(server.URL, "random").Upload(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUploadFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCloudinaryUploader_MissingFile(t *testing.T) {
	_, err := NewCloudinaryUploader("http://unused", "random").Upload(context.Background(), "/no/such/file.jpg")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestPrepareImage_Downscales(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "wide.png", 400, 100)

	img, err := prepareImage(path, 200)
	require.NoError(t, err)

	assert.True(t, img.Resized)
	assert.Equal(t, "wide.jpg", img.Filename)
	assert.Equal(t, "image/jpeg", img.ContentType)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 200, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())
}

func TestPrepareImage_PassThrough(t *testing.T) {
	dir := t.TempDir()
	small := writePNG(t, dir, "small.png", 10, 10)

	img, err := prepareImage(small, 200)
	require.NoError(t, err)
	assert.False(t, img.Resized)
	assert.Equal(t, "image/png", img.ContentType)

	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))
	img, err = prepareImage(notImage, 200)
	require.NoError(t, err)
	assert.False(t, img.Resized)
	assert.Equal(t, []byte("hello"), img.Data)
}

func TestResolveAll_ReusesHostedAndKeepsOrder(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/a.jpg").Return("https://cdn/a.jpg", nil).Once()
	up.On("Upload", mock.Anything, "/tmp/c.jpg").Return("https://cdn/c.jpg", nil).Once()

	refs := []string{"/tmp/a.jpg", "https://cdn/b.jpg", "", "/tmp/c.jpg"}
	out, err := ResolveAll(context.Background(), up, refs)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "", "https://cdn/c.jpg"}, out)
	assert.Equal(t, "/tmp/a.jpg", refs[0], "input slice must not be modified")
	up.AssertExpectations(t)
}

func TestResolveAll_AllHostedMakesNoCalls(t *testing.T) {
	up := &mockUploader{}

	out, err := ResolveAll(context.Background(), up, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, out)
	up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestResolveAll_FailureKeepsFinishedUploads(t *testing.T) {
	boom := errors.New("boom")
	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/ok.jpg").Return("https://cdn/ok.jpg", nil)
	up.On("Upload", mock.Anything, "/tmp/bad.jpg").Return("", boom)

	out, err := ResolveAll(context.Background(), up, []string{"/tmp/ok.jpg", "/tmp/bad.jpg"})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, "/tmp/bad.jpg", out[1])
	// ok.jpg may or may not have finished before cancellation; when it did,
	// its URL is kept.
	assert.True(t, out[0] == "/tmp/ok.jpg" || out[0] == "https://cdn/ok.jpg")
}

func TestResolve(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/x.jpg").Return("https://cdn/x.jpg", nil).Once()

	got, err := Resolve(context.Background(), up, "/tmp/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.jpg", got)

	got, err = Resolve(context.Background(), up, "https://cdn/y.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/y.jpg", got)

	up.AssertExpectations(t)
}

type fakePutter struct {
	calls atomic.Int32
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls.Add(1)
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	path := writePNG(t, t.TempDir(), "sofa.png", 4, 4)
	putter := &fakePutter{}

	up := NewS3UploaderWithClient(putter, S3Config{Region: "ap-south-1", Bucket: "retrend"}, nil)
	url, err := up.Upload(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, int32(1), putter.calls.Load())
	assert.Equal(t, "retrend", *putter.input.Bucket)
	assert.True(t, strings.HasPrefix(*putter.input.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(*putter.input.Key, "_sofa.png"))
	assert.Equal(t, "image/png", *putter.input.ContentType)
	assert.NotEmpty(t, putter.body)
	assert.Equal(t, "https://retrend.s3.ap-south-1.amazonaws.com/"+*putter.input.Key, url)
}

func TestS3Uploader_PublicURLAndError(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 4, 4)

	putter := &fakePutter{}
	up := NewS3UploaderWithClient(putter, S3Config{Bucket: "b", PublicURL: "https://img.retrend.in"}, nil)
	url, err := up.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://img.retrend.in/uploads/"))

	putter.err = errors.New("access denied")
	_, err = up.Upload(context.Background(), path)
	assert.ErrorIs(t, err, ErrUploadFailed)
}
