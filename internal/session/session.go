// Package session is the client-side state holder: the current user, the
// cached lists and every mutating operation the commands call. It composes
// the API façade and the persistence stores; pages (commands) only read
// snapshots and invoke operations, never the stores directly.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/notify"
	"github.com/facupepi/serviapp-cli/internal/store"
)

// Session owns all mutable client state. Every exported operation locks
// around state, never around network: the mutex is released before any API
// call and re-taken to apply the result.
type Session struct {
	mu sync.Mutex

	api      *api.Client
	tokens   *store.TokenStore
	profiles *store.ProfileStore
	state    *store.StateStore
	notifier *notify.Notifier
	log      *zap.Logger

	stateDir   string
	production bool

	// auth state
	user          *api.User
	token         string
	loginAttempts int
	blockedUntil  time.Time

	// caches, emptied on every identity change
	services         []api.Service
	owned            []api.Service
	userRequests     []api.Appointment
	providerRequests []api.Appointment
	favorites        []string
	categories       []string

	// in-flight guards: a second caller gets the cached snapshot instead of
	// a duplicate network call
	fetchingServices     bool
	fetchingAppointments bool
}

// Options configures New.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	StateDir   string
	Production bool
	Logger     *zap.Logger
	Notifier   *notify.Notifier
	// HTTPClient overrides the transport; tests point it at httptest.
	APIOptions []api.Option
}

// New builds a session and performs the one-time bootstrap: persisted token,
// profile, favorites and throttle counters are loaded here, once, at startup.
// There is no hidden package-level state; callers own the returned handle.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		tokens:     store.NewTokenStore(opts.StateDir, opts.Production),
		profiles:   store.NewProfileStore(opts.StateDir),
		state:      store.NewStateStore(opts.StateDir),
		notifier:   opts.Notifier,
		log:        log,
		stateDir:   opts.StateDir,
		production: opts.Production,
	}

	apiOpts := []api.Option{
		api.WithLogger(log),
		api.WithTokenSource(s),
		api.WithUnauthorizedHandler(s.handleSessionExpired),
	}
	if opts.BaseURL != "" {
		apiOpts = append(apiOpts, api.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(opts.Timeout))
	}
	apiOpts = append(apiOpts, opts.APIOptions...)
	s.api = api.NewClient(apiOpts...)

	s.bootstrap()
	return s
}

// bootstrap restores persisted session state. An expired token is treated as
// absent so the user starts anonymous instead of hitting 401s.
func (s *Session) bootstrap() {
	if s.tokens.HasValid() {
		if token, ok := s.tokens.Load(); ok {
			s.token = token
			if user, ok := s.profiles.Load(); ok {
				s.user = user
			}
		}
	} else {
		_ = s.tokens.Delete()
	}

	st := s.state.Load()
	s.loginAttempts = st.LoginAttempts
	s.blockedUntil = st.BlockedUntil
	if s.user != nil {
		s.favorites = st.Favorites
	}
}

// Token implements api.TokenSource.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// API exposes the underlying façade client.
func (s *Session) API() *api.Client {
	return s.api
}

// handleSessionExpired is the 401 interceptor: drop the token and cached
// profile so the next command starts anonymous.
func (s *Session) handleSessionExpired() {
	s.mu.Lock()
	hadUser := s.user != nil
	s.token = ""
	s.user = nil
	s.clearCachesLocked()
	s.mu.Unlock()

	_ = s.tokens.Delete()
	_ = s.profiles.Delete()

	if hadUser {
		s.toast(notify.Warning, "Sesión expirada", "Inicia sesión nuevamente.")
	}
}

// clearCachesLocked empties every list-shaped cache. Called on any identity
// change so no cross-account data survives. Caller holds mu.
func (s *Session) clearCachesLocked() {
	s.services = nil
	s.owned = nil
	s.userRequests = nil
	s.providerRequests = nil
	s.favorites = nil
}

// persistStateLocked rewrites the local state file from memory. Caller holds mu.
func (s *Session) persistStateLocked() {
	err := s.state.Save(store.State{
		Favorites:     s.favorites,
		LoginAttempts: s.loginAttempts,
		BlockedUntil:  s.blockedUntil,
	})
	if err != nil {
		s.log.Warn("persisting local state", zap.Error(err))
	}
}

func (s *Session) toast(typ notify.Type, title, message string) {
	if s.notifier != nil {
		s.notifier.Add(typ, title, message, 0)
	}
}

// --- snapshots ---

// CurrentUser returns the authenticated user, or nil when anonymous.
func (s *Session) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Services returns the cached public service list.
func (s *Session) Services() []api.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Service(nil), s.services...)
}

// OwnedServices returns the cached owned-services list.
func (s *Session) OwnedServices() []api.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Service(nil), s.owned...)
}

// UserRequests returns the appointments the user requested as a client.
func (s *Session) UserRequests() []api.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Appointment(nil), s.userRequests...)
}

// ProviderRequests returns the appointments received on the user's services.
func (s *Session) ProviderRequests() []api.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Appointment(nil), s.providerRequests...)
}

// FavoriteIDs returns the current favorite service ids.
func (s *Session) FavoriteIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...)
}

// Categories returns the cached category list.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...)
}

// FetchCategories returns the category list, fetching it on first use.
// force bypasses the cache.
func (s *Session) FetchCategories(ctx context.Context, force bool) ([]string, error) {
	s.mu.Lock()
	if len(s.categories) > 0 && !force {
		cached := append([]string(nil), s.categories...)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	cats, err := s.api.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	return append([]string(nil), cats...), nil
}

// UpdateProfile pushes profile changes and refreshes the cached user.
func (s *Session) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error) {
	user, err := s.api.Users.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.profiles.Save(user); err != nil {
		s.log.Warn("caching profile", zap.Error(err))
	}
	s.toast(notify.Success, "Perfil actualizado", "Tus datos fueron guardados.")
	u := *user
	return &u, nil
}
