package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/notify"
)

// CreateServiceInput is the form shape of a service, with availability as
// the per-day range list the edit form works with.
type CreateServiceInput struct {
	Title        string
	Description  string
	Category     string
	Price        float64
	Zones        []api.Zone
	Availability WeekSchedule
	ImageURL     string
}

func (in CreateServiceInput) wire() api.ServiceInput {
	return api.ServiceInput{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		Zones:        in.Zones,
		Availability: NormalizeAvailability(in.Availability),
		ImageURL:     in.ImageURL,
	}
}

// FetchServices refreshes the public service list. If a fetch is already in
// flight the caller gets the last known snapshot instead of a second call.
func (s *Session) FetchServices(ctx context.Context, filter *api.ServiceFilter) ([]api.Service, error) {
	s.mu.Lock()
	if s.fetchingServices {
		cached := append([]api.Service(nil), s.services...)
		s.mu.Unlock()
		return cached, nil
	}
	s.fetchingServices = true
	s.mu.Unlock()

	services, err := s.api.Services.List(ctx, filter)

	s.mu.Lock()
	s.fetchingServices = false
	if err == nil {
		s.services = services
	}
	cached := append([]api.Service(nil), s.services...)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return cached, nil
}

// FetchOwnedServices refreshes the authenticated provider's service list.
func (s *Session) FetchOwnedServices(ctx context.Context) ([]api.Service, error) {
	services, err := s.api.Services.Mine(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.owned = services
	cached := append([]api.Service(nil), s.owned...)
	s.mu.Unlock()
	return cached, nil
}

// GetService fetches one service detail. Not cached: the detail page always
// shows fresh data.
func (s *Session) GetService(ctx context.Context, id string) (*api.Service, error) {
	return s.api.Services.Get(ctx, id)
}

// ServiceCalendar returns a service's free slots per day. Not cached.
func (s *Session) ServiceCalendar(ctx context.Context, id string) ([]api.CalendarDay, error) {
	return s.api.Services.Calendar(ctx, id)
}

// CreateService validates locally (description ≥ 100 chars among others),
// normalizes availability into the wire shape and merges the stored record
// into the owned cache without a full reload.
func (s *Session) CreateService(ctx context.Context, in CreateServiceInput) (*api.Service, error) {
	if err := validateServiceInput(in.Title, in.Description, in.Category, in.Price, len(in.Zones), true); err != nil {
		return nil, err
	}

	svc, err := s.api.Services.Create(ctx, in.wire())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.owned = append(s.owned, *svc)
	s.mu.Unlock()

	s.toast(notify.Success, "Servicio publicado", svc.Title)
	return svc, nil
}

// UpdateService validates, normalizes and patches the cached copy with the
// server's response.
func (s *Session) UpdateService(ctx context.Context, id string, in CreateServiceInput) (*api.Service, error) {
	if err := validateServiceInput(in.Title, in.Description, in.Category, in.Price, len(in.Zones), false); err != nil {
		return nil, err
	}

	svc, err := s.api.Services.Update(ctx, id, in.wire())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.patchOwnedLocked(*svc)
	s.mu.Unlock()
	return svc, nil
}

// patchOwnedLocked replaces the cached copy of a service. Caller holds mu.
func (s *Session) patchOwnedLocked(svc api.Service) {
	for i := range s.owned {
		if s.owned[i].ID == svc.ID {
			s.owned[i] = svc
			return
		}
	}
	s.owned = append(s.owned, svc)
}

// ToggleServiceStatus flips a service between active and inactive.
func (s *Session) ToggleServiceStatus(ctx context.Context, id string) error {
	s.mu.Lock()
	current := api.ServiceActive
	for i := range s.owned {
		if s.owned[i].ID == id {
			current = s.owned[i].Status
			break
		}
	}
	s.mu.Unlock()

	target := api.ServiceInactive
	if current == api.ServiceInactive {
		target = api.ServiceActive
	}
	return s.setServiceStatus(ctx, id, target)
}

// DeactivateService hides a service from the public listing.
func (s *Session) DeactivateService(ctx context.Context, id string) error {
	return s.setServiceStatus(ctx, id, api.ServiceInactive)
}

// ReactivateService republishes a deactivated service.
func (s *Session) ReactivateService(ctx context.Context, id string) error {
	return s.setServiceStatus(ctx, id, api.ServiceActive)
}

// setServiceStatus patches the cached item when the response carries the
// updated record, and falls back to refetching the owned list when it does
// not — the refetch is a deliberate consistency guard, not an oversight.
func (s *Session) setServiceStatus(ctx context.Context, id string, status api.ServiceStatus) error {
	svc, err := s.api.Services.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}

	if svc != nil {
		s.mu.Lock()
		s.patchOwnedLocked(*svc)
		s.mu.Unlock()
		return nil
	}

	if _, err := s.FetchOwnedServices(ctx); err != nil {
		s.log.Warn("refetching owned services after status change", zap.Error(err))
	}
	return nil
}

// DeleteService removes a service. Best-effort: the backend may refuse while
// appointments reference it.
func (s *Session) DeleteService(ctx context.Context, id string) error {
	if err := s.api.Services.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.owned {
		if s.owned[i].ID == id {
			s.owned = append(s.owned[:i], s.owned[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
