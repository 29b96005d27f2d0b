package api

import (
	"errors"
	"net/http"
	"testing"
)

func TestParseError_NestedBody(t *testing.T) {
	body := []byte(`{"error":{"code":"service_not_found","message":"service does not exist"}}`)
	err := parseError("getService", http.StatusNotFound, body)

	if err.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.StatusCode)
	}
	if err.Code != "service_not_found" {
		t.Errorf("expected code 'service_not_found', got %q", err.Code)
	}
	if err.ServerMessage != "service does not exist" {
		t.Errorf("expected server message preserved, got %q", err.ServerMessage)
	}
	if err.Message != statusMessages[http.StatusNotFound] {
		t.Errorf("expected localized 404 message, got %q", err.Message)
	}
}

func TestParseError_FlatBody(t *testing.T) {
	body := []byte(`{"code":"validation_failed","message":"price must be positive"}`)
	err := parseError("createService", http.StatusBadRequest, body)

	if err.Code != "validation_failed" {
		t.Errorf("expected flat code extracted, got %q", err.Code)
	}
	if err.ServerMessage != "price must be positive" {
		t.Errorf("expected flat message extracted, got %q", err.ServerMessage)
	}
	if !err.IsValidation() {
		t.Error("expected 400 to be a validation error")
	}
}

func TestParseError_ErrorStringBody(t *testing.T) {
	body := []byte(`{"error":"token already used"}`)
	err := parseError("resetPassword", http.StatusBadRequest, body)

	if err.ServerMessage != "token already used" {
		t.Errorf("expected string error extracted, got %q", err.ServerMessage)
	}
}

func TestParseError_OperationOverrides(t *testing.T) {
	tests := []struct {
		op     string
		status int
		want   string
	}{
		{"login", http.StatusUnauthorized, "Email o contraseña incorrectos."},
		{"register", http.StatusConflict, "Ya existe una cuenta registrada con ese email."},
		{"getServiceAppointments", http.StatusForbidden, "No tienes permisos para ver los turnos de este servicio"},
		{"createAppointment", http.StatusConflict, "El horario seleccionado ya no está disponible."},
	}

	for _, tc := range tests {
		err := parseError(tc.op, tc.status, nil)
		if err.Message != tc.want {
			t.Errorf("%s/%d: expected %q, got %q", tc.op, tc.status, tc.want, err.Message)
		}
	}
}

func TestParseError_GenericStatusFallback(t *testing.T) {
	err := parseError("getServices", http.StatusInternalServerError, nil)
	if err.Message != "Error del servidor. Intenta nuevamente más tarde." {
		t.Errorf("unexpected 500 message %q", err.Message)
	}
}

func TestParseError_UnknownStatusUsesServerMessage(t *testing.T) {
	body := []byte(`{"message":"teapots cannot brew coffee"}`)
	err := parseError("getServices", http.StatusTeapot, body)
	if err.Message != "teapots cannot brew coffee" {
		t.Errorf("expected server text passthrough, got %q", err.Message)
	}

	err = parseError("getServices", http.StatusTeapot, nil)
	if err.Message != msgGenericFail {
		t.Errorf("expected generic fallback, got %q", err.Message)
	}
}

func TestParseError_EmptyAndGarbageBody(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte("<html>bad gateway</html>")} {
		err := parseError("getServices", http.StatusBadGateway, body)
		if err.ServerMessage != "" {
			t.Errorf("expected no server message for %q, got %q", body, err.ServerMessage)
		}
		if err.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status preserved, got %d", err.StatusCode)
		}
	}
}

func TestConnectionError(t *testing.T) {
	err := connectionError("login", errors.New("dial tcp: connection refused"))

	if !err.IsConnectivity() {
		t.Error("expected connectivity error")
	}
	if err.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", err.StatusCode)
	}
	if err.Message != msgNoConnection {
		t.Errorf("expected %q, got %q", msgNoConnection, err.Message)
	}
	if err.ServerMessage != "dial tcp: connection refused" {
		t.Errorf("expected transport detail preserved, got %q", err.ServerMessage)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !(&Error{StatusCode: http.StatusUnauthorized}).IsUnauthorized() {
		t.Error("expected IsUnauthorized for 401")
	}
	if !(&Error{StatusCode: http.StatusForbidden}).IsForbidden() {
		t.Error("expected IsForbidden for 403")
	}
	if !(&Error{StatusCode: http.StatusNotFound}).IsNotFound() {
		t.Error("expected IsNotFound for 404")
	}
	if !(&Error{StatusCode: http.StatusUnprocessableEntity}).IsValidation() {
		t.Error("expected IsValidation for 422")
	}
	if (&Error{StatusCode: http.StatusForbidden}).IsConnectivity() {
		t.Error("403 must not read as connectivity")
	}
}

func TestAsError(t *testing.T) {
	apiErr := &Error{StatusCode: http.StatusNotFound, Message: "nope"}
	if got, ok := AsError(apiErr); !ok || got != apiErr {
		t.Error("expected AsError to unwrap *Error")
	}
	if _, ok := AsError(errors.New("plain")); ok {
		t.Error("expected AsError to reject plain errors")
	}
}

func TestError_ErrorString(t *testing.T) {
	err := &Error{Code: "conflict", Message: "ya existe"}
	if err.Error() != "conflict: ya existe" {
		t.Errorf("unexpected Error() %q", err.Error())
	}

	err = &Error{Message: "sin código"}
	if err.Error() != "sin código" {
		t.Errorf("unexpected Error() %q", err.Error())
	}
}
