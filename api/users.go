package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/snapsite-dev/storefront-client/models"
)

// Login exchanges email/password for a bearer token and stores it.
// POST /api/users/login
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &resp, nil
}

// GoogleLogin exchanges a Google OAuth access token for a bearer token.
// POST /api/users/google-login
func (c *Client) GoogleLogin(ctx context.Context, accessToken string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.GoogleLoginRequest{Token: accessToken}
	if err := c.do(ctx, http.MethodPost, "/api/users/google-login", nil, req, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &resp, nil
}

// POST /api/users/
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/users/", nil, req, nil)
}

// GET /api/users/me (auth)
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PUT /api/users/me (auth)
func (c *Client) UpdateMe(ctx context.Context, req models.UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, "/api/users/me", nil, req, nil)
}

// PUT /api/users/me/password (auth)
func (c *Client) ChangeOwnPassword(ctx context.Context, current, updated string) error {
	req := models.ChangeOwnPasswordRequest{CurrentPassword: current, NewPassword: updated}
	return c.do(ctx, http.MethodPut, "/api/users/me/password", nil, req, nil)
}

// SendOTP kicks off the forgot-password flow for the given address.
// GET /api/users/send-otp/:email
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodGet, "/api/users/send-otp/"+email, nil, nil, nil)
}

// ResetPassword completes the forgot-password flow with the emailed OTP.
// POST /api/users/change-password
func (c *Client) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/api/users/change-password", nil, req, nil)
}

// GET /api/users/all-users (admin)
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/all-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ToggleBlockUser flips the blocked flag on a user account.
// PUT /api/users/block/:email (admin)
func (c *Client) ToggleBlockUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPut, "/api/users/block/"+email, nil, nil, nil)
}
