package hub

import (
	"context"
	"fmt"
)

// Organization is an org a user belongs to.
type Organization struct {
	Name     string `json:"name"`
	Fullname string `json:"fullname,omitempty"`
}

// User is the authenticated identity returned by /api/whoami-v2.
type User struct {
	Type     string         `json:"type,omitempty"`
	Name     string         `json:"name"`
	Fullname string         `json:"fullname,omitempty"`
	Email    string         `json:"email,omitempty"`
	Orgs     []Organization `json:"orgs,omitempty"`
}

// Whoami resolves the identity behind the client's token. Without a token
// it fails immediately with ErrUnauthorized.
func (c *Client) Whoami(ctx context.Context) (*User, error) {
	if c.token == "" {
		return nil, fmt.Errorf("whoami: %w", ErrUnauthorized)
	}

	var user User
	if _, err := c.getJSON(ctx, c.apiURL("/api/whoami-v2", nil), &user); err != nil {
		return nil, fmt.Errorf("whoami: %w", err)
	}
	return &user, nil
}
