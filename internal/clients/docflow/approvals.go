package docflow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samandr77/docflow/internal/entity"
)

// Approvals lists the caller's pending queue. limit <= 0 means no limit.
func (c *Client) Approvals(ctx context.Context, limit int) ([]entity.Approval, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var approvals []entity.Approval

	if err := c.do(ctx, http.MethodGet, "/approvals", query, nil, &approvals); err != nil {
		return nil, fmt.Errorf("get approvals: %w", err)
	}

	return approvals, nil
}

func (c *Client) ApprovalStats(ctx context.Context) (entity.ApprovalStats, error) {
	var stats entity.ApprovalStats

	if err := c.do(ctx, http.MethodGet, "/approvals/stats", nil, nil, &stats); err != nil {
		return entity.ApprovalStats{}, fmt.Errorf("get approval stats: %w", err)
	}

	return stats, nil
}

func (c *Client) Decide(ctx context.Context, approvalID string, decision entity.Decision) error {
	body := map[string]entity.Decision{"status": decision}

	if err := c.do(ctx, http.MethodPut, "/approvals/"+url.PathEscape(approvalID)+"/decision", nil, body, nil); err != nil {
		return fmt.Errorf("decide approval: %w", err)
	}

	return nil
}

func (c *Client) ForwardApproval(ctx context.Context, approvalID, newApproverID string) error {
	body := map[string]string{"newApproverId": newApproverID}

	if err := c.do(ctx, http.MethodPut, "/approvals/"+url.PathEscape(approvalID)+"/forward", nil, body, nil); err != nil {
		return fmt.Errorf("forward approval: %w", err)
	}

	return nil
}
