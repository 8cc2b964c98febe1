package docflow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samandr77/docflow/internal/entity"
)

func (c *Client) Users(ctx context.Context) ([]entity.User, error) {
	return c.listUsers(ctx, "/users")
}

func (c *Client) Managers(ctx context.Context) ([]entity.User, error) {
	return c.listUsers(ctx, "/users/managers")
}

func (c *Client) Staff(ctx context.Context) ([]entity.User, error) {
	return c.listUsers(ctx, "/users/staff")
}

func (c *Client) listUsers(ctx context.Context, path string) ([]entity.User, error) {
	var users []entity.User

	if err := c.do(ctx, http.MethodGet, path, nil, nil, &users); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	return users, nil
}

func (c *Client) Profile(ctx context.Context) (entity.User, error) {
	var user entity.User

	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &user); err != nil {
		return entity.User{}, fmt.Errorf("get profile: %w", err)
	}

	return user, nil
}

func (c *Client) History(ctx context.Context) ([]entity.HistoryEvent, error) {
	var events []entity.HistoryEvent

	if err := c.do(ctx, http.MethodGet, "/users/history", nil, nil, &events); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return events, nil
}

func (c *Client) CreateUser(ctx context.Context, in entity.UserInput) error {
	if err := c.do(ctx, http.MethodPost, "/users/create", nil, in, nil); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (c *Client) UpdateUser(ctx context.Context, in entity.UserInput) error {
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(in.ID), nil, in, nil); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}
