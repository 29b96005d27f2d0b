package session

import (
	"context"

	"github.com/facupepi/serviapp-cli/internal/notify"
)

// IsFavorite reports whether the service is in the local favorites set.
func (s *Session) IsFavorite(serviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteIndexLocked(serviceID) >= 0
}

func (s *Session) favoriteIndexLocked(serviceID string) int {
	for i, id := range s.favorites {
		if id == serviceID {
			return i
		}
	}
	return -1
}

// ToggleFavorite flips the membership optimistically: local state and
// storage change first, the backend confirms afterwards, and a rejection
// rolls the flip back and rewrites storage to match. From the caller's
// perspective the toggle is idempotent: two toggles restore the original
// state whether or not the backend call succeeded.
func (s *Session) ToggleFavorite(ctx context.Context, serviceID string) (nowFavorite bool, err error) {
	s.mu.Lock()
	idx := s.favoriteIndexLocked(serviceID)
	adding := idx < 0
	if adding {
		s.favorites = append(s.favorites, serviceID)
	} else {
		s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
	}
	s.persistStateLocked()
	s.mu.Unlock()

	if adding {
		err = s.api.Favorites.Add(ctx, serviceID)
	} else {
		err = s.api.Favorites.Remove(ctx, serviceID)
	}

	if err != nil {
		// Rollback: restore the pre-toggle membership and rewrite storage.
		s.mu.Lock()
		idx := s.favoriteIndexLocked(serviceID)
		if adding && idx >= 0 {
			s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
		} else if !adding && idx < 0 {
			s.favorites = append(s.favorites, serviceID)
		}
		s.persistStateLocked()
		nowFavorite = s.favoriteIndexLocked(serviceID) >= 0
		s.mu.Unlock()
		return nowFavorite, err
	}

	if adding {
		s.toast(notify.Info, "Favoritos", "Servicio agregado a favoritos.")
	}
	return adding, nil
}

// RefreshFavorites replaces the local set with the backend's.
func (s *Session) RefreshFavorites(ctx context.Context) ([]string, error) {
	ids, err := s.api.Favorites.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.favorites = ids
	s.persistStateLocked()
	cached := append([]string(nil), s.favorites...)
	s.mu.Unlock()
	return cached, nil
}
