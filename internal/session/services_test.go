package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facupepi/serviapp-cli/internal/api"
)

func TestCreateService_ValidatesBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := s.CreateService(context.Background(), CreateServiceInput{
		Title:       "Plomería general",
		Description: strings.Repeat("x", 40),
		Category:    "Hogar",
		Price:       1500,
		Zones:       []api.Zone{{Province: "Santa Fe", Locality: "Esperanza"}},
	})
	require.Error(t, err)
	assert.Equal(t, msgDescriptionMin, err.Error())
	assert.Zero(t, hits.Load(), "invalid input must not reach the network")
}

func TestCreateService_NormalizesAvailabilityAndCaches(t *testing.T) {
	var wire api.ServiceInput
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		_ = json.NewEncoder(w).Encode(api.Service{ID: "s1", Title: wire.Title, Status: api.ServiceActive})
	}))

	svc, err := s.CreateService(context.Background(), CreateServiceInput{
		Title:       "Plomería general",
		Description: strings.Repeat("x", 100),
		Category:    "Hogar",
		Price:       1500,
		Zones:       []api.Zone{{Province: "Santa Fe", Locality: "Esperanza"}},
		Availability: WeekSchedule{
			"monday": {{Start: "14:00", End: "18:00"}, {Start: "09:00", End: "12:00"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, api.Availability{"monday": {"09:00-12:00", "14:00-18:00"}}, wire.Availability)

	owned := s.OwnedServices()
	require.Len(t, owned, 1)
	assert.Equal(t, svc.ID, owned[0].ID)
}

func TestFetchServices_InFlightGuardReturnsSnapshot(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once

	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(entered) })
		<-release
		_, _ = w.Write([]byte(`{"services":[{"id":"s1"}]}`))
	}))

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.FetchServices(ctx, nil)
	}()

	<-entered
	// While the first fetch is parked in the handler, a second caller gets
	// the cached snapshot back immediately.
	services, err := s.FetchServices(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, services)

	close(release)
	<-done
	assert.Len(t, s.Services(), 1)
}

func TestSetServiceStatus_PatchesFromResponse(t *testing.T) {
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Service{ID: "s1", Title: "Plomería", Status: api.ServiceInactive})
	}))

	s.mu.Lock()
	s.owned = []api.Service{{ID: "s1", Title: "Plomería", Status: api.ServiceActive}}
	s.mu.Unlock()

	require.NoError(t, s.DeactivateService(context.Background(), "s1"))

	owned := s.OwnedServices()
	require.Len(t, owned, 1)
	assert.Equal(t, api.ServiceInactive, owned[0].Status)
}

func TestSetServiceStatus_EmptyResponseRefetches(t *testing.T) {
	var listHits atomic.Int64
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		listHits.Add(1)
		_, _ = w.Write([]byte(`{"services":[{"id":"s1","status":"inactive"}]}`))
	}))

	require.NoError(t, s.DeactivateService(context.Background(), "s1"))
	assert.EqualValues(t, 1, listHits.Load(), "empty status response must trigger a refetch")

	owned := s.OwnedServices()
	require.Len(t, owned, 1)
	assert.Equal(t, api.ServiceInactive, owned[0].Status)
}

func TestToggleServiceStatus_FlipsCachedState(t *testing.T) {
	var requested []string
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		requested = append(requested, body["status"])
		_ = json.NewEncoder(w).Encode(api.Service{ID: "s1", Status: api.ServiceStatus(body["status"])})
	}))

	s.mu.Lock()
	s.owned = []api.Service{{ID: "s1", Status: api.ServiceActive}}
	s.mu.Unlock()

	ctx := context.Background()
	require.NoError(t, s.ToggleServiceStatus(ctx, "s1"))
	require.NoError(t, s.ToggleServiceStatus(ctx, "s1"))

	assert.Equal(t, []string{"inactive", "active"}, requested)
}

func TestServiceCalendar(t *testing.T) {
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services/s1/calendar" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"days":[{"date":"2026-09-01","slots":["09:00","10:00"]}]}`))
	}))

	days, err := s.ServiceCalendar(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"09:00", "10:00"}, days[0].Slots)
}

func TestDeleteService_RemovesFromCache(t *testing.T) {
	s, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	s.mu.Lock()
	s.owned = []api.Service{{ID: "s1"}, {ID: "s2"}}
	s.mu.Unlock()

	require.NoError(t, s.DeleteService(context.Background(), "s1"))

	owned := s.OwnedServices()
	require.Len(t, owned, 1)
	assert.Equal(t, "s2", owned[0].ID)
}
