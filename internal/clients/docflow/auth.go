package docflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samandr77/docflow/internal/entity"
)

type loginResponse struct {
	ID         string      `json:"_id"`
	AltID      string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       entity.Role `json:"role"`
	Department string      `json:"department"`
	Token      string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, creds entity.Credentials) (entity.Session, error) {
	var resp loginResponse

	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return entity.Session{}, fmt.Errorf("login: %w", err)
	}

	id := resp.ID
	if id == "" {
		id = resp.AltID
	}

	return entity.Session{
		UserID:     id,
		Name:       resp.Name,
		Email:      resp.Email,
		Role:       resp.Role,
		Department: resp.Department,
		Token:      resp.Token,
	}, nil
}
