package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"go-pos-console/internal/model"
)

// Login authenticates and returns the token and resolved privileges.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates token on the server.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Permissions fetches the current privilege codes of the token's user.
// A body without a privileges list is malformed and reported as ErrNetwork;
// only an explicit empty list means the user holds nothing.
func (c *Client) Permissions(ctx context.Context, token string) ([]string, error) {
	var resp struct {
		Privileges *[]string `json:"privileges"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/permissions", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Privileges == nil {
		return nil, fmt.Errorf("%w: missing privileges", ErrNetwork)
	}
	if *resp.Privileges == nil {
		return []string{}, nil
	}
	return *resp.Privileges, nil
}

func (c *Client) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", req, nil)
}

// Heartbeat keeps the server-side session from idling out.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/heartbeat", c.token, nil, nil)
}
