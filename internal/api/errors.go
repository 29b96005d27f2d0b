package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes for failures that never reached the backend.
const (
	CodeNoConnection = "no_connection"
	CodeClientError  = "client_error"
)

// Error represents a failed API call. Every failure path of the façade
// resolves to an *Error carrying a user-facing Spanish message; transport
// details stay available for logging and for callers that branch on status.
type Error struct {
	// StatusCode is the HTTP status code, or 0 when no response was received.
	StatusCode int `json:"-"`
	// Code is the backend machine-readable code when present, or one of the
	// Code* constants for client-side failures.
	Code string `json:"code"`
	// Message is the localized, user-facing message.
	Message string `json:"message"`
	// ServerMessage is the raw message the backend returned, if any.
	ServerMessage string `json:"server_message,omitempty"`
	// Op names the façade operation, e.g. "login" or "getServiceAppointments".
	Op string `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsUnauthorized reports whether the backend rejected the credentials.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether the backend denied permission.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the resource does not exist.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsValidation reports whether the backend rejected the payload.
func (e *Error) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// IsConnectivity reports whether the request never got a response.
func (e *Error) IsConnectivity() bool {
	return e.Code == CodeNoConnection
}

// AsError extracts an *Error from err, if it is one.
func AsError(err error) (*Error, bool) {
	apiErr, ok := err.(*Error)
	return apiErr, ok
}

// Generic localized messages per HTTP status. Per-operation overrides in
// opMessages take precedence; the server's own message is the fallback for
// statuses missing here.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Solicitud inválida. Revisa los datos ingresados.",
	http.StatusUnauthorized:        "Credenciales inválidas o sesión expirada.",
	http.StatusForbidden:           "No tienes permisos para realizar esta acción.",
	http.StatusNotFound:            "El recurso solicitado no existe.",
	http.StatusConflict:            "El recurso ya existe o fue modificado por otra persona.",
	http.StatusUnprocessableEntity: "Los datos enviados no son válidos.",
	http.StatusTooManyRequests:     "Demasiadas solicitudes. Intenta nuevamente en unos minutos.",
	http.StatusInternalServerError: "Error del servidor. Intenta nuevamente más tarde.",
}

const (
	msgNoConnection = "Error de conexión. Verifica tu conexión a internet."
	msgUnexpected   = "Ocurrió un error inesperado. Intenta nuevamente."
	msgGenericFail  = "No se pudo completar la operación. Intenta nuevamente."
)

// opStatus keys the per-operation message overrides.
type opStatus struct {
	op     string
	status int
}

var opMessages = map[opStatus]string{
	{"login", http.StatusUnauthorized}:                    "Email o contraseña incorrectos.",
	{"login", http.StatusTooManyRequests}:                 "Demasiados intentos de inicio de sesión. Espera unos minutos.",
	{"register", http.StatusConflict}:                     "Ya existe una cuenta registrada con ese email.",
	{"getServiceAppointments", http.StatusForbidden}:      "No tienes permisos para ver los turnos de este servicio",
	{"createAppointment", http.StatusConflict}:            "El horario seleccionado ya no está disponible.",
	{"updateAppointmentStatus", http.StatusForbidden}:     "No tienes permisos para modificar este turno.",
	{"createService", http.StatusForbidden}:               "Debes verificar tu cuenta para publicar servicios.",
	{"submitReview", http.StatusConflict}:                 "Ya dejaste una reseña para este servicio.",
	{"resetPassword", http.StatusNotFound}:                "El enlace de recuperación no es válido.",
}

// decode shapes the backend uses for error bodies, tried in order:
// {"error":{"code","message"}}, then flat {"code","message"}, then
// {"message"} or {"error":"..."} strings.
func parseError(op string, statusCode int, body []byte) *Error {
	code, serverMsg := extractServerError(body)

	msg, ok := opMessages[opStatus{op, statusCode}]
	if !ok {
		msg, ok = statusMessages[statusCode]
	}
	if !ok {
		if serverMsg != "" {
			msg = serverMsg
		} else {
			msg = msgGenericFail
		}
	}

	return &Error{
		StatusCode:    statusCode,
		Code:          code,
		Message:       msg,
		ServerMessage: serverMsg,
		Op:            op,
	}
}

func extractServerError(body []byte) (code, message string) {
	if len(body) == 0 {
		return "", ""
	}

	var nested struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Code, nested.Error.Message
	}

	var flat struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		if flat.Message != "" {
			return flat.Code, flat.Message
		}
		if flat.Error != "" {
			return flat.Code, flat.Error
		}
	}

	return "", ""
}

// connectionError builds the error for requests that got no response.
func connectionError(op string, err error) *Error {
	return &Error{
		Code:          CodeNoConnection,
		Message:       msgNoConnection,
		ServerMessage: err.Error(),
		Op:            op,
	}
}

// clientError builds the error for requests that were never sent.
func clientError(op string, err error) *Error {
	return &Error{
		Code:          CodeClientError,
		Message:       msgUnexpected,
		ServerMessage: err.Error(),
		Op:            op,
	}
}
