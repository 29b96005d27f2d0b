package api

import (
	"context"
	"fmt"
)

// AppointmentsService groups the appointment endpoints.
type AppointmentsService struct {
	client *Client
}

// Create requests a slot on a service as the authenticated client.
func (s *AppointmentsService) Create(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var appt Appointment
	if err := s.client.post(ctx, "createAppointment", "/api/appointments", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Mine returns both projections of the caller's appointments: the ones they
// requested as a client and the ones received as a provider.
func (s *AppointmentsService) Mine(ctx context.Context) (*MyAppointments, error) {
	var resp MyAppointments
	if err := s.client.get(ctx, "getMyAppointments", "/api/my-appointments", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus moves an appointment through its lifecycle (accept, reject,
// cancel, complete). A rejection carries an optional reason.
func (s *AppointmentsService) UpdateStatus(ctx context.Context, id string, status AppointmentStatus, reason string) (*Appointment, error) {
	body := map[string]string{"status": string(status)}
	if reason != "" {
		body["reason"] = reason
	}

	var appt Appointment
	if err := s.client.put(ctx, "updateAppointmentStatus", fmt.Sprintf("/api/appointments/%s/status", id), body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
