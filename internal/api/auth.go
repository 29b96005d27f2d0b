package api

import "context"

// AuthService groups the authentication endpoints.
type AuthService struct {
	client *Client
}

// Register creates a new account. Depending on backend configuration the
// response may or may not include a session token (see AuthResponse).
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.post(ctx, "register", "/api/user/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := s.client.post(ctx, "login", "/api/user/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to mail a recovery link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.client.post(ctx, "forgotPassword", "/api/user/forgot-password", body, nil)
}

// ResetPassword consumes a recovery token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return s.client.post(ctx, "resetPassword", "/api/user/reset-password", req, nil)
}
