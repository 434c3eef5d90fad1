package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, call{
		operation: "login",
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      LoginRequest{Email: email, Password: password},
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListNotes(ctx context.Context, token string) ([]Note, error) {
	var out []Note
	err := c.do(ctx, call{operation: "list_notes", method: http.MethodGet, path: "/notes", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNote(ctx context.Context, token string, in NoteInput) (*Note, error) {
	var out Note
	err := c.do(ctx, call{operation: "create_note", method: http.MethodPost, path: "/notes", token: token, body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, token, id string, in NoteInput) (*Note, error) {
	var out Note
	err := c.do(ctx, call{
		operation: "update_note",
		method:    http.MethodPut,
		path:      "/notes/" + url.PathEscape(id),
		token:     token,
		body:      in,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		operation: "delete_note",
		method:    http.MethodDelete,
		path:      "/notes/" + url.PathEscape(id),
		token:     token,
	})
}

func (c *Client) GetSubscription(ctx context.Context, token string) (*Subscription, error) {
	var out Subscription
	err := c.do(ctx, call{operation: "get_subscription", method: http.MethodGet, path: "/subscription", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListInvoices(ctx context.Context, token string) ([]Invoice, error) {
	var out []Invoice
	err := c.do(ctx, call{operation: "list_invoices", method: http.MethodGet, path: "/billing/history", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterTenant submits a completed registration. The body is whatever the
// caller passes; the registration form serializes with the API's field names.
func (c *Client) RegisterTenant(ctx context.Context, registration any) error {
	return c.do(ctx, call{operation: "register_tenant", method: http.MethodPost, path: "/tenants/register", body: registration})
}
