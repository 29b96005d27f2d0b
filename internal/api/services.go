package api

import (
	"context"
	"fmt"
	"net/url"
)

// ServicesService groups the service CRUD and read endpoints.
type ServicesService struct {
	client *Client
}

// List returns published services, optionally narrowed by filter.
func (s *ServicesService) List(ctx context.Context, filter *ServiceFilter) ([]Service, error) {
	path := "/api/services"
	if filter != nil {
		q := url.Values{}
		if filter.Query != "" {
			q.Set("q", filter.Query)
		}
		if filter.Category != "" {
			q.Set("category", filter.Category)
		}
		if filter.Province != "" {
			q.Set("province", filter.Province)
		}
		if filter.Locality != "" {
			q.Set("locality", filter.Locality)
		}
		if encoded := q.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var resp struct {
		Services []Service `json:"services"`
	}
	if err := s.client.get(ctx, "getServices", path, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// Mine returns the services owned by the authenticated provider.
func (s *ServicesService) Mine(ctx context.Context) ([]Service, error) {
	var resp struct {
		Services []Service `json:"services"`
	}
	if err := s.client.get(ctx, "getMyServices", "/api/services?mine=true", &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// Get retrieves a single service by id.
func (s *ServicesService) Get(ctx context.Context, id string) (*Service, error) {
	var svc Service
	if err := s.client.get(ctx, "getService", "/api/services/"+id, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Create publishes a new service and returns the stored record.
func (s *ServicesService) Create(ctx context.Context, input ServiceInput) (*Service, error) {
	var svc Service
	if err := s.client.post(ctx, "createService", "/api/services", input, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Update replaces a service's editable fields and returns the stored record.
func (s *ServicesService) Update(ctx context.Context, id string, input ServiceInput) (*Service, error) {
	var svc Service
	if err := s.client.put(ctx, "updateService", "/api/services/"+id, input, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// SetStatus activates or deactivates a service. Some backend versions answer
// 204 with no body; the returned pointer is nil in that case and callers are
// expected to refetch.
func (s *ServicesService) SetStatus(ctx context.Context, id string, status ServiceStatus) (*Service, error) {
	body := map[string]string{"status": string(status)}
	var svc Service
	if err := s.client.patch(ctx, "toggleServiceStatus", fmt.Sprintf("/api/services/%s/status", id), body, &svc); err != nil {
		return nil, err
	}
	if svc.ID == "" {
		return nil, nil
	}
	return &svc, nil
}

// Delete removes a service. Best-effort: the backend may answer 409 while
// active appointments reference it.
func (s *ServicesService) Delete(ctx context.Context, id string) error {
	return s.client.del(ctx, "deleteService", "/api/services/"+id)
}

// Calendar returns the service's booking calendar (free slots per day).
func (s *ServicesService) Calendar(ctx context.Context, id string) ([]CalendarDay, error) {
	var resp struct {
		Days []CalendarDay `json:"days"`
	}
	if err := s.client.get(ctx, "getServiceCalendar", fmt.Sprintf("/api/services/%s/calendar", id), &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

// Availability returns the service's configured weekly time windows.
func (s *ServicesService) Availability(ctx context.Context, id string) (Availability, error) {
	var resp struct {
		Availability Availability `json:"availability"`
	}
	if err := s.client.get(ctx, "getServiceAvailability", fmt.Sprintf("/api/services/%s/availability", id), &resp); err != nil {
		return nil, err
	}
	return resp.Availability, nil
}

// Appointments returns the appointments booked against one service. Only the
// owning provider may call this.
func (s *ServicesService) Appointments(ctx context.Context, id string) ([]Appointment, error) {
	var resp struct {
		Appointments []Appointment `json:"appointments"`
	}
	if err := s.client.get(ctx, "getServiceAppointments", fmt.Sprintf("/api/services/%s/appointments", id), &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}
