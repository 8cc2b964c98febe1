package docflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/samandr77/docflow/internal/entity"
)

const uploadField = "documentFile"

func (c *Client) Documents(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document

	if err := c.do(ctx, http.MethodGet, "/documents", nil, nil, &docs); err != nil {
		return nil, fmt.Errorf("get documents: %w", err)
	}

	return docs, nil
}

func (c *Client) Document(ctx context.Context, id string) (entity.Document, error) {
	var doc entity.Document

	if err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return entity.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}

	return doc, nil
}

func (c *Client) ApprovedDocuments(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document

	if err := c.do(ctx, http.MethodGet, "/documents/approved", nil, nil, &docs); err != nil {
		return nil, fmt.Errorf("get approved documents: %w", err)
	}

	return docs, nil
}

func (c *Client) DocumentStats(ctx context.Context) ([]entity.CategoryStat, error) {
	var stats []entity.CategoryStat

	if err := c.do(ctx, http.MethodGet, "/documents/stats", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("get document stats: %w", err)
	}

	return stats, nil
}

func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) error {
	if err := c.upload(ctx, "/documents/upload", uploadField, filename, content, nil); err != nil {
		return fmt.Errorf("upload document: %w", err)
	}

	return nil
}

func (c *Client) RequestApproval(ctx context.Context, docID, managerID string) error {
	body := map[string]string{"managerId": managerID}

	err := c.do(ctx, http.MethodPost, "/documents/"+url.PathEscape(docID)+"/request-approval", nil, body, nil)
	if err != nil {
		return fmt.Errorf("request approval: %w", err)
	}

	return nil
}

func (c *Client) ForwardDocument(ctx context.Context, docID, staffID string) error {
	body := map[string]string{"staffId": staffID}

	if err := c.do(ctx, http.MethodPost, "/documents/"+url.PathEscape(docID)+"/forward", nil, body, nil); err != nil {
		return fmt.Errorf("forward document: %w", err)
	}

	return nil
}
