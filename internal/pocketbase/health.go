package pocketbase

import (
	"context"
	"net/http"
)

type HealthCheck struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (*HealthCheck, error) {
	var hc HealthCheck
	if err := c.Send(ctx, http.MethodGet, "/api/health", nil, nil, &hc); err != nil {
		return nil, err
	}
	return &hc, nil
}
