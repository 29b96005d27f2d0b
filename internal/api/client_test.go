package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected baseURL %q, got %q", DefaultBaseURL, client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}

	if client.Auth == nil {
		t.Error("expected Auth service to be initialized")
	}
	if client.Users == nil {
		t.Error("expected Users service to be initialized")
	}
	if client.Categories == nil {
		t.Error("expected Categories service to be initialized")
	}
	if client.Services == nil {
		t.Error("expected Services service to be initialized")
	}
	if client.Appointments == nil {
		t.Error("expected Appointments service to be initialized")
	}
	if client.Favorites == nil {
		t.Error("expected Favorites service to be initialized")
	}
	if client.Reviews == nil {
		t.Error("expected Reviews service to be initialized")
	}
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{Timeout: 60 * time.Second}
	customURL := "https://staging.serviapp.com"

	client := NewClient(
		WithBaseURL(customURL),
		WithHTTPClient(customClient),
	)

	if client.BaseURL() != customURL {
		t.Errorf("expected baseURL %q, got %q", customURL, client.baseURL)
	}
	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}
}

func TestNewClient_WithTimeout(t *testing.T) {
	client := NewClient(WithTimeout(3 * time.Second))
	if client.httpClient.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", client.httpClient.Timeout)
	}
}

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

// newTestServer creates a test server and client for testing.
func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) (*httptest.Server, *Client) {
	server := httptest.NewServer(handler)
	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	client := NewClient(opts...)
	t.Cleanup(server.Close)
	return server, client
}

func TestDoRequest_BearerToken(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"categories":["Plomería"]}`))
	}, WithTokenSource(staticToken("tok-123")))

	if _, err := client.Categories.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoRequest_AnonymousWithoutToken(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"categories":[]}`))
	}, WithTokenSource(staticToken("")))

	if _, err := client.Categories.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoRequest_UnauthorizedHook(t *testing.T) {
	hookCalls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}, WithUnauthorizedHandler(func() { hookCalls++ }))

	_, err := client.Users.GetProfile(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if hookCalls != 1 {
		t.Errorf("expected unauthorized hook to fire once, fired %d times", hookCalls)
	}

	apiErr, ok := AsError(err)
	if !ok || !apiErr.IsUnauthorized() {
		t.Errorf("expected unauthorized *Error, got %v", err)
	}
}

func TestDoRequest_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listens there anymore
	client := NewClient(WithBaseURL(server.URL), WithTimeout(time.Second))

	_, err := client.Categories.List(context.Background())
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !apiErr.IsConnectivity() {
		t.Errorf("expected connectivity error, got %+v", apiErr)
	}
	if apiErr.Message != msgNoConnection {
		t.Errorf("expected %q, got %q", msgNoConnection, apiErr.Message)
	}
}

func TestAuthService_Login(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/user/login" {
			t.Errorf("expected /api/user/login, got %s", r.URL.Path)
		}

		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Email != "ana@example.com" {
			t.Errorf("expected email in body, got %q", body.Email)
		}

		_ = json.NewEncoder(w).Encode(AuthResponse{
			Token: "jwt-token",
			User:  &User{ID: "u1", Name: "Ana", Email: body.Email},
		})
	})

	resp, err := client.Auth.Login(context.Background(), "ana@example.com", "Secreta1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Errorf("expected token, got %q", resp.Token)
	}
	if resp.User == nil || resp.User.Name != "Ana" {
		t.Errorf("expected user in response, got %+v", resp.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"invalid_credentials","message":"wrong password"}}`))
	})

	_, err := client.Auth.Login(context.Background(), "ana@example.com", "mala")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Email o contraseña incorrectos." {
		t.Errorf("expected login override message, got %q", apiErr.Message)
	}
	if apiErr.Code != "invalid_credentials" {
		t.Errorf("expected backend code preserved, got %q", apiErr.Code)
	}
}

func TestServicesService_List_Filter(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "Plomería" {
			t.Errorf("expected category filter, got %q", q.Get("category"))
		}
		if q.Get("province") != "Santa Fe" {
			t.Errorf("expected province filter, got %q", q.Get("province"))
		}
		_, _ = w.Write([]byte(`{"services":[{"id":"s1","title":"Destapaciones"}]}`))
	})

	services, err := client.Services.List(context.Background(), &ServiceFilter{
		Category: "Plomería",
		Province: "Santa Fe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 1 || services[0].ID != "s1" {
		t.Errorf("unexpected services %+v", services)
	}
}

func TestServicesService_Mine_QueryPreserved(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services" || r.URL.Query().Get("mine") != "true" {
			t.Errorf("expected /api/services?mine=true, got %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"services":[]}`))
	})

	if _, err := client.Services.Mine(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServicesService_SetStatus_EmptyBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	svc, err := client.Services.SetStatus(context.Background(), "s1", ServiceInactive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc != nil {
		t.Errorf("expected nil service on empty body, got %+v", svc)
	}
}

func TestServicesService_Appointments_Forbidden(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not your service"}`))
	})

	_, err := client.Services.Appointments(context.Background(), "s9")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "No tienes permisos para ver los turnos de este servicio" {
		t.Errorf("unexpected forbidden message %q", apiErr.Message)
	}
}

func TestFavoritesService_RoundTrip(t *testing.T) {
	var added, removed string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/favorites":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			added = body["serviceId"]
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete:
			removed = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"serviceIds":["s1","s2"]}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	if err := client.Favorites.Add(ctx, "s1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if added != "s1" {
		t.Errorf("expected serviceId in body, got %q", added)
	}

	if err := client.Favorites.Remove(ctx, "s1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed != "/api/favorites/s1" {
		t.Errorf("unexpected delete path %q", removed)
	}

	ids, err := client.Favorites.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 favorites, got %v", ids)
	}
}

func TestAppointmentsService_UpdateStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appointments/a1/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "rejected" || body["reason"] != "fuera de zona" {
			t.Errorf("unexpected body %v", body)
		}
		_, _ = w.Write([]byte(`{"id":"a1","status":"rejected","reason":"fuera de zona"}`))
	})

	appt, err := client.Appointments.UpdateStatus(context.Background(), "a1", AppointmentRejected, "fuera de zona")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != AppointmentRejected {
		t.Errorf("expected rejected, got %s", appt.Status)
	}
}
