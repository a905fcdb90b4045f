package hub

import (
	"context"
	"fmt"
)

// MetricInfo is an evaluation metric record as returned by /api/metrics.
type MetricInfo struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Citation    string `json:"citation,omitempty"`
}

// ListMetrics returns every evaluation metric the Hub knows about.
func (c *Client) ListMetrics(ctx context.Context) ([]*MetricInfo, error) {
	var metrics []*MetricInfo
	if _, err := c.getJSON(ctx, c.apiURL("/api/metrics", nil), &metrics); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}
