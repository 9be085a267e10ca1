package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-token")

	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.True(t, client.HasToken())
	assert.NotNil(t, client.httpClient)
}

func TestClient_WithToken(t *testing.T) {
	anon := NewClient("")
	authed := anon.WithToken("abc")

	assert.False(t, anon.HasToken())
	assert.True(t, authed.HasToken())
	assert.Equal(t, anon.BaseURL(), authed.BaseURL())
}

func TestClient_AuthedRequestSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	_, err := client.getAuthed(context.Background(), "/wishlist")

	require.NoError(t, err)
}

func TestClient_UnauthedRequestOmitsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	_, err := client.get(context.Background(), "/getProducts", nil)

	require.NoError(t, err)
}

func TestClient_AuthedRequestWithoutToken(t *testing.T) {
	client := NewClient("", WithBaseURL("http://127.0.0.1:1"))

	_, err := client.getAuthed(context.Background(), "/wishlist")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_HandlesErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantErr    error
		wantMsg    string
	}{
		{
			name:       "401 unauthorized",
			statusCode: http.StatusUnauthorized,
			response:   `{"message": "invalid token"}`,
			wantErr:    ErrUnauthorized,
			wantMsg:    "invalid token",
		},
		{
			name:       "404 not found",
			statusCode: http.StatusNotFound,
			response:   `{"error": "no such route"}`,
			wantErr:    ErrNotFound,
			wantMsg:    "no such route",
		},
		{
			name:       "400 bad request",
			statusCode: http.StatusBadRequest,
			response:   `{"msg": "title required"}`,
			wantErr:    ErrBadRequest,
			wantMsg:    "title required",
		},
		{
			name:       "500 server error",
			statusCode: http.StatusInternalServerError,
			response:   `oops`,
			wantErr:    ErrServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient("test-token", WithBaseURL(server.URL))
			_, err := client.getAuthed(context.Background(), "/wishlist")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.GetProducts(context.Background(), "India")

	assert.Error(t, err)
}

func TestWithHTTPClient(t *testing.T) {
	customClient := &http.Client{}
	client := NewClient("token", WithHTTPClient(customClient))

	assert.Same(t, customClient, client.httpClient)
}
