package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facupepi/serviapp-cli/internal/api"
)

func TestSubmitReview_RatingBounds(t *testing.T) {
	var hits atomic.Int64
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	ctx := context.Background()
	for _, rating := range []int{0, -1, 6} {
		_, err := s.SubmitReview(ctx, "s1", rating, "")
		require.Error(t, err)
		assert.Equal(t, msgRatingRange, err.Error())
	}
	assert.Zero(t, hits.Load(), "invalid ratings must not reach the network")
}

func TestSubmitReview(t *testing.T) {
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in api.ReviewInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(api.Review{ID: "r1", ServiceID: in.ServiceID, Rating: in.Rating, Comment: in.Comment})
	}))

	review, err := s.SubmitReview(context.Background(), "s1", 5, "Excelente trabajo")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "s1", review.ServiceID)
}
