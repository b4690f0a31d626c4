package qrimage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/manea/internal/config"
)

// TestRender verifies the request shape and the returned body.
func TestRender(t *testing.T) {
	var gotPath, gotData, gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotData = r.URL.Query().Get("data")
		gotSize = r.URL.Query().Get("size")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	client := NewClient(config.QRImageConfig{RenderBaseURL: server.URL})

	body, err := client.Render(context.Background(), "https://farm.example.com/qr/tok-1", 250)
	require.NoError(t, err)

	assert.Equal(t, []byte("png-bytes"), body)
	assert.Equal(t, "/v1/create-qr-code/", gotPath)
	assert.Equal(t, "https://farm.example.com/qr/tok-1", gotData)
	assert.Equal(t, "250x250", gotSize)
}

// TestRender_DefaultSize falls back to 300 px.
func TestRender_DefaultSize(t *testing.T) {
	var gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("size")
	}))
	defer server.Close()

	client := NewClient(config.QRImageConfig{RenderBaseURL: server.URL})

	_, err := client.Render(context.Background(), "payload", 0)
	require.NoError(t, err)
	assert.Equal(t, "300x300", gotSize)
}

// TestRender_EmptyPayload is rejected client-side.
func TestRender_EmptyPayload(t *testing.T) {
	client := NewClient(config.QRImageConfig{RenderBaseURL: "http://localhost:0"})

	_, err := client.Render(context.Background(), "", 250)
	assert.Error(t, err)
}

// TestRender_UpstreamError surfaces non-2xx statuses.
func TestRender_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.QRImageConfig{RenderBaseURL: server.URL})

	_, err := client.Render(context.Background(), "payload", 250)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
