package api

import (
	"context"
	"fmt"
)

// ReviewsService groups the review endpoints.
type ReviewsService struct {
	client *Client
}

// Create submits a review for a service the caller hired.
func (s *ReviewsService) Create(ctx context.Context, input ReviewInput) (*Review, error) {
	var review Review
	if err := s.client.post(ctx, "submitReview", "/api/reviews", input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByService returns the reviews left on a service, newest first.
func (s *ReviewsService) ListByService(ctx context.Context, serviceID string) ([]Review, error) {
	var resp struct {
		Reviews []Review `json:"reviews"`
	}
	if err := s.client.get(ctx, "getServiceReviews", fmt.Sprintf("/api/services/%s/reviews", serviceID), &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}
