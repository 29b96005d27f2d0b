package api

import "context"

// FavoritesService reconciles the locally-kept favorites set with the
// backend. The optimistic flip itself lives in the session.
type FavoritesService struct {
	client *Client
}

// List returns the ids of the caller's favorite services.
func (s *FavoritesService) List(ctx context.Context) ([]string, error) {
	var resp struct {
		ServiceIDs []string `json:"serviceIds"`
	}
	if err := s.client.get(ctx, "getFavorites", "/api/favorites", &resp); err != nil {
		return nil, err
	}
	return resp.ServiceIDs, nil
}

// Add marks a service as favorite.
func (s *FavoritesService) Add(ctx context.Context, serviceID string) error {
	body := map[string]string{"serviceId": serviceID}
	return s.client.post(ctx, "addFavorite", "/api/favorites", body, nil)
}

// Remove unmarks a favorite service.
func (s *FavoritesService) Remove(ctx context.Context, serviceID string) error {
	return s.client.del(ctx, "removeFavorite", "/api/favorites/"+serviceID)
}
