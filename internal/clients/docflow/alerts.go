package docflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samandr77/docflow/internal/entity"
)

func (c *Client) Alerts(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert

	if err := c.do(ctx, http.MethodGet, "/alerts", nil, nil, &alerts); err != nil {
		return nil, fmt.Errorf("get alerts: %w", err)
	}

	return alerts, nil
}

// AssignedDocuments returns the forwarded-to-me records. Entries whose
// document no longer exists are kept here and dropped by the screen.
func (c *Client) AssignedDocuments(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert

	if err := c.do(ctx, http.MethodGet, "/alerts/assigned", nil, nil, &alerts); err != nil {
		return nil, fmt.Errorf("get assigned documents: %w", err)
	}

	return alerts, nil
}
