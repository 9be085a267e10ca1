//go:build integration

package api

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests talk to a real backend and require:
// - RETREND_API_BASE_URL: backend to hit (defaults to the hosted one)
// - RETREND_AUTH_TOKEN: a valid bearer token for the authenticated tests
//
// Run with: go test -tags=integration ./internal/api/...

func getTestClient(t *testing.T) *Client {
	baseURL := os.Getenv("RETREND_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return NewClient(os.Getenv("RETREND_AUTH_TOKEN"), WithBaseURL(baseURL))
}

func TestIntegration_GetProducts(t *testing.T) {
	client := getTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	_, err := client.GetProducts(ctx, "India")
	require.NoError(t, err)
}

func TestIntegration_CheckSession(t *testing.T) {
	client := getTestClient(t)
	if !client.HasToken() {
		t.Skip("requires RETREND_AUTH_TOKEN")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	require.NoError(t, client.CheckSession(ctx))
}

func TestIntegration_CheckSession_Invalid(t *testing.T) {
	client := getTestClient(t).WithToken("invalid-token")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	err := client.CheckSession(ctx)
	assert.Error(t, err, "invalid token should return error")
}
