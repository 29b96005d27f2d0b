package api

import "context"

// CategoriesService fetches the flat category list.
type CategoriesService struct {
	client *Client
}

// List returns all service categories.
func (s *CategoriesService) List(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := s.client.get(ctx, "getCategories", "/api/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
