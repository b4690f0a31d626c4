// Package qrimage fetches rendered QR code images from an external
// rendering service. Encoding is an external collaborator; this client is
// its interface.
package qrimage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/manea/internal/config"
)

// Client renders QR code images for arbitrary payloads.
type Client interface {
	Render(ctx context.Context, payload string, sizePx int) ([]byte, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a QR rendering client using the provided configuration
// values.
func NewClient(cfg config.QRImageConfig) *APIClient {
	base := strings.TrimSuffix(cfg.RenderBaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// Render fetches a PNG encoding of the payload at the requested pixel size.
func (c *APIClient) Render(ctx context.Context, payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("payload must not be empty")
	}
	if sizePx <= 0 {
		sizePx = 300
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("data", payload).
		SetQueryParam("size", fmt.Sprintf("%dx%d", sizePx, sizePx)).
		Get("/v1/create-qr-code/")
	if err != nil {
		return nil, fmt.Errorf("render qr image: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("render qr image: unexpected status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
