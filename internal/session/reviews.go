package session

import (
	"context"
	"errors"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/notify"
)

// SubmitReview rates a service the user hired. Rating must be 1-5.
func (s *Session) SubmitReview(ctx context.Context, serviceID string, rating int, comment string) (*api.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New(msgRatingRange)
	}

	review, err := s.api.Reviews.Create(ctx, api.ReviewInput{
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		return nil, err
	}

	s.toast(notify.Success, "Reseña enviada", "Gracias por tu opinión.")
	return review, nil
}

// ServiceReviews lists the reviews left on a service.
func (s *Session) ServiceReviews(ctx context.Context, serviceID string) ([]api.Review, error) {
	return s.api.Reviews.ListByService(ctx, serviceID)
}
