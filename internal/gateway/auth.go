package gateway

import (
	"context"
	"net/http"
)

func (c *Client) Login(ctx context.Context, in LoginRequest) (LoginResult, error) {
	resp, err := c.send(ctx, request{method: http.MethodPost, path: "/auth/login", body: in})
	if err != nil {
		return LoginResult{}, err
	}
	return raw[LoginResult](resp)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (Ack, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   map[string]string{"email": email},
	})
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (Ack, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/auth/verify-otp",
		body:   map[string]string{"email": email, "otp": otp},
	})
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

// Enums fetches the department, position and status option sets. The
// endpoint is public.
func (c *Client) Enums(ctx context.Context) (Enums, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/enums"})
	if err != nil {
		return Enums{}, err
	}
	return raw[Enums](resp)
}

// ChangePassword sends the bearer token only when one is bound, which lets
// the forgot-password flow reset by email.
func (a *API) ChangePassword(ctx context.Context, in ChangePasswordRequest) (Ack, error) {
	resp, err := a.c.send(ctx, request{
		method: http.MethodPost,
		path:   "/auth/change-password",
		body:   in,
		token:  a.token,
	})
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

func (a *API) Enums(ctx context.Context) (Enums, error) {
	return a.c.Enums(ctx)
}
