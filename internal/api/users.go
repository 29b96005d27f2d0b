package api

import "context"

// UsersService groups the profile endpoints.
type UsersService struct {
	client *Client
}

// GetProfile fetches the authenticated user's profile.
func (s *UsersService) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "getProfile", "/api/user/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the authenticated user's profile and returns the
// merged record.
func (s *UsersService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var user User
	if err := s.client.put(ctx, "updateProfile", "/api/user/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
