package api

import "time"

// User is the authenticated account as the backend reports it. The
// reputation fields are display-only; the backend is authoritative.
type User struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Locality      string  `json:"locality"`
	Province      string  `json:"province"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	CompletedJobs int     `json:"completedJobs"`
	Verified      bool    `json:"verified"`
}

// Zone is a geographic area a service covers.
type Zone struct {
	Province     string `json:"province"`
	Locality     string `json:"locality"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

// Availability is the wire shape for per-weekday time windows: lowercase
// English weekday -> list of "HH:MM-HH:MM" ranges.
type Availability map[string][]string

// ServiceStatus is the publication state of a service.
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// Service is a published service offer.
type Service struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Price        float64       `json:"price"`
	Zones        []Zone        `json:"zones"`
	Availability Availability  `json:"availability"`
	Status       ServiceStatus `json:"status"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	ProviderID   string        `json:"providerId"`
	ProviderName string        `json:"providerName,omitempty"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"reviewCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// AppointmentStatus is the lifecycle state of an appointment request.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentAccepted  AppointmentStatus = "accepted"
	AppointmentRejected  AppointmentStatus = "rejected"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentExpired   AppointmentStatus = "expired"
)

// Appointment is a client's request for a service slot. Both parties see the
// same record through different list projections.
type Appointment struct {
	ID           string            `json:"id"`
	ServiceID    string            `json:"serviceId"`
	ServiceTitle string            `json:"serviceTitle,omitempty"`
	ClientID     string            `json:"clientId"`
	ClientName   string            `json:"clientName,omitempty"`
	ProviderID   string            `json:"providerId"`
	ProviderName string            `json:"providerName,omitempty"`
	Date         string            `json:"date"` // "2006-01-02"
	Time         string            `json:"time"` // "HH:MM"
	Status       AppointmentStatus `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Review is a client's rating of a completed service.
type Review struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"serviceId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CalendarDay is one day of a service's booking calendar.
type CalendarDay struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"` // "HH:MM", free slots only
}

// --- request payloads ---

// RegisterRequest is the body for POST /api/user/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Province string `json:"province"`
	Locality string `json:"locality"`
}

// LoginRequest is the body for POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body for POST /api/user/reset-password.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateProfileRequest is the body for PUT /api/user/profile. Empty fields
// are left unchanged by the backend.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Province string `json:"province,omitempty"`
	Locality string `json:"locality,omitempty"`
}

// ServiceInput is the body for creating or updating a service.
type ServiceInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Price        float64      `json:"price"`
	Zones        []Zone       `json:"zones"`
	Availability Availability `json:"availability"`
	ImageURL     string       `json:"imageUrl,omitempty"`
}

// AppointmentRequest is the body for POST /api/appointments.
type AppointmentRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ReviewInput is the body for submitting a review.
type ReviewInput struct {
	ServiceID string `json:"serviceId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// ServiceFilter narrows the public service listing.
type ServiceFilter struct {
	Query    string
	Category string
	Province string
	Locality string
}

// --- responses ---

// AuthResponse is returned by login and, when the backend authenticates
// immediately, by register. A register response without a token means the
// account was created but the user must log in separately.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// MyAppointments carries both projections of the caller's appointments.
type MyAppointments struct {
	AsClient   []Appointment `json:"asClient"`
	AsProvider []Appointment `json:"asProvider"`
}
