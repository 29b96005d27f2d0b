package session

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/notify"
)

// RequestAppointment books a slot on a service as the current user.
func (s *Session) RequestAppointment(ctx context.Context, serviceID, date, timeOfDay string) (*api.Appointment, error) {
	if serviceID == "" || date == "" || timeOfDay == "" {
		return nil, errors.New("Debes indicar servicio, fecha y horario")
	}

	appt, err := s.api.Appointments.Create(ctx, api.AppointmentRequest{
		ServiceID: serviceID,
		Date:      date,
		Time:      timeOfDay,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.userRequests = append(s.userRequests, *appt)
	s.mu.Unlock()

	s.toast(notify.Success, "Turno solicitado", "El proveedor confirmará tu solicitud.")
	return appt, nil
}

// RefreshRequests reloads both projections of the user's appointments.
func (s *Session) RefreshRequests(ctx context.Context) error {
	mine, err := s.api.Appointments.Mine(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userRequests = mine.AsClient
	s.providerRequests = mine.AsProvider
	s.mu.Unlock()
	return nil
}

// RespondToRequest accepts or rejects a pending appointment as the provider.
// The updated record is written into both projections so the two views of
// the same appointment never diverge.
func (s *Session) RespondToRequest(ctx context.Context, id string, accept bool, reason string) error {
	status := api.AppointmentAccepted
	if !accept {
		status = api.AppointmentRejected
	}

	appt, err := s.api.Appointments.UpdateStatus(ctx, id, status, reason)
	if err != nil {
		return err
	}

	s.applyAppointmentUpdate(*appt)
	return nil
}

// CompleteRequest marks an accepted appointment as completed.
func (s *Session) CompleteRequest(ctx context.Context, id string) error {
	appt, err := s.api.Appointments.UpdateStatus(ctx, id, api.AppointmentCompleted, "")
	if err != nil {
		return err
	}

	s.applyAppointmentUpdate(*appt)
	return nil
}

// CancelRequest cancels a pending appointment as the client.
func (s *Session) CancelRequest(ctx context.Context, id string) error {
	appt, err := s.api.Appointments.UpdateStatus(ctx, id, api.AppointmentCancelled, "")
	if err != nil {
		return err
	}

	s.applyAppointmentUpdate(*appt)
	return nil
}

// applyAppointmentUpdate patches the appointment in both cached projections.
func (s *Session) applyAppointmentUpdate(appt api.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.userRequests {
		if s.userRequests[i].ID == appt.ID {
			s.userRequests[i] = appt
			break
		}
	}
	for i := range s.providerRequests {
		if s.providerRequests[i].ID == appt.ID {
			s.providerRequests[i] = appt
			break
		}
	}
}

// GetAllServiceAppointments fans out over every owned service, fetches its
// appointments individually and flattens them most-recent-first. Guarded by
// an in-flight flag: a concurrent caller gets the provider-requests cache.
// If the owned-services cache is empty it is recovered first.
func (s *Session) GetAllServiceAppointments(ctx context.Context) ([]api.Appointment, error) {
	s.mu.Lock()
	if s.fetchingAppointments {
		cached := append([]api.Appointment(nil), s.providerRequests...)
		s.mu.Unlock()
		return cached, nil
	}
	s.fetchingAppointments = true
	owned := append([]api.Service(nil), s.owned...)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.fetchingAppointments = false
		s.mu.Unlock()
	}()

	if len(owned) == 0 {
		refreshed, err := s.FetchOwnedServices(ctx)
		if err != nil {
			return nil, err
		}
		owned = refreshed
	}

	var all []api.Appointment
	for _, svc := range owned {
		appts, err := s.api.Services.Appointments(ctx, svc.ID)
		if err != nil {
			// One bad service must not hide the rest of the agenda.
			s.log.Warn("fetching service appointments",
				zap.String("serviceId", svc.ID), zap.Error(err))
			continue
		}
		all = append(all, appts...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	s.mu.Lock()
	s.providerRequests = all
	cached := append([]api.Appointment(nil), all...)
	s.mu.Unlock()
	return cached, nil
}
