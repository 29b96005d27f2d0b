package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/notify"
)

const (
	maxLoginAttempts   = 5
	loginBlockDuration = 10 * time.Minute
)

const (
	msgLoginBlocked = "Has alcanzado el límite de intentos. Inicio de sesión bloqueado por 10 minutos."
	msgResetUsed    = "El enlace de recuperación ya fue utilizado. Solicita uno nuevo."
	msgResetExpired = "El enlace de recuperación expiró. Solicita uno nuevo."
	msgResetInvalid = "El enlace de recuperación no es válido."
	msgResetWeak    = "La contraseña no cumple con los requisitos."
)

// RegisterResult distinguishes the two success shapes of registration:
// some backend configurations authenticate immediately, others require a
// separate login.
type RegisterResult struct {
	Authenticated bool
	Message       string
}

// Login authenticates against the backend. While blocked it rejects
// immediately, without a network call; the block is set after
// maxLoginAttempts consecutive failures and survives process restarts.
func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return errors.New("Email y contraseña son obligatorios")
	}

	s.mu.Lock()
	if remaining := time.Until(s.blockedUntil); remaining > 0 {
		s.mu.Unlock()
		minutes := int(remaining.Minutes()) + 1
		return fmt.Errorf("Demasiados intentos fallidos. Intenta nuevamente en %d minutos.", minutes)
	}
	// A block that already lapsed self-expires here.
	if !s.blockedUntil.IsZero() {
		s.blockedUntil = time.Time{}
		s.loginAttempts = 0
		s.persistStateLocked()
	}
	s.mu.Unlock()

	resp, err := s.api.Auth.Login(ctx, email, password)
	if err != nil {
		return s.recordLoginFailure(err)
	}
	if resp.Token == "" || resp.User == nil {
		return errors.New("Respuesta inesperada del servidor. Intenta nuevamente.")
	}

	s.establishSession(resp.Token, resp.User)
	s.toast(notify.Success, "Bienvenido", "Hola, "+resp.User.Name)
	return nil
}

// recordLoginFailure counts rejected credentials toward the block. Network
// failures surface as-is without advancing the counter.
func (s *Session) recordLoginFailure(err error) error {
	apiErr, ok := api.AsError(err)
	if !ok || !apiErr.IsUnauthorized() {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loginAttempts++
	if s.loginAttempts >= maxLoginAttempts {
		s.blockedUntil = time.Now().Add(loginBlockDuration)
		s.persistStateLocked()
		return errors.New(msgLoginBlocked)
	}
	s.persistStateLocked()
	return err
}

// establishSession installs a fresh identity: persists token and profile,
// resets the throttle and empties every cache so nothing leaks across
// accounts.
func (s *Session) establishSession(token string, user *api.User) {
	s.mu.Lock()
	s.clearCachesLocked()
	s.token = token
	s.user = user
	s.loginAttempts = 0
	s.blockedUntil = time.Time{}
	s.persistStateLocked()
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		s.log.Warn("persisting token", zap.Error(err))
	}
	if err := s.profiles.Save(user); err != nil {
		s.log.Warn("caching profile", zap.Error(err))
	}
}

// Register validates locally first, then creates the account. When the
// backend returns a token the session is established immediately; otherwise
// the caller is told to log in.
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) (*RegisterResult, error) {
	in := registrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Province: req.Province,
		Locality: req.Locality,
	}
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	resp, err := s.api.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.Token != "" && resp.User != nil {
		s.establishSession(resp.Token, resp.User)
		s.toast(notify.Success, "Cuenta creada", "Bienvenido, "+resp.User.Name)
		return &RegisterResult{Authenticated: true, Message: resp.Message}, nil
	}

	msg := resp.Message
	if msg == "" {
		msg = "Cuenta creada. Ahora puedes iniciar sesión."
	}
	return &RegisterResult{Authenticated: false, Message: msg}, nil
}

// Logout clears the session and every persisted artifact.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loginAttempts = 0
	s.blockedUntil = time.Time{}
	s.clearCachesLocked()
	s.mu.Unlock()

	return s.clearStores()
}

func (s *Session) clearStores() error {
	if err := s.tokens.Delete(); err != nil {
		return err
	}
	if err := s.profiles.Delete(); err != nil {
		return err
	}
	return s.state.Delete()
}

// ForgotPassword requests a recovery email.
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return errors.New(msgInvalidEmail)
	}
	return s.api.Auth.ForgotPassword(ctx, email)
}

// ResetPassword consumes a recovery token. Backend 400s are classified into
// used / expired / invalid / weak by matching the server text in English and
// Spanish — a stopgap until the backend returns stable machine codes.
func (s *Session) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New(msgResetInvalid)
	}
	if err := validateNewPassword(password, confirm); err != nil {
		return err
	}

	err := s.api.Auth.ResetPassword(ctx, api.ResetPasswordRequest{
		Token:           token,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err == nil {
		s.toast(notify.Success, "Contraseña actualizada", "Ya puedes iniciar sesión.")
		return nil
	}

	apiErr, ok := api.AsError(err)
	if !ok || !apiErr.IsValidation() {
		return err
	}
	return errors.New(classifyResetFailure(apiErr.ServerMessage))
}

// classifyResetFailure maps the backend's free-text 400 reason onto one of
// the four known failure kinds. Order matters: "used" before "invalid"
// because some backend texts contain both.
func classifyResetFailure(serverMsg string) string {
	msg := strings.ToLower(serverMsg)
	switch {
	case strings.Contains(msg, "already used"),
		strings.Contains(msg, "ya fue utilizado"),
		strings.Contains(msg, "ya fue usado"):
		return msgResetUsed
	case strings.Contains(msg, "expired"),
		strings.Contains(msg, "expirado"),
		strings.Contains(msg, "vencido"):
		return msgResetExpired
	case strings.Contains(msg, "password"),
		strings.Contains(msg, "contraseña"):
		return msgResetWeak
	case strings.Contains(msg, "invalid"),
		strings.Contains(msg, "inválido"),
		strings.Contains(msg, "invalido"):
		return msgResetInvalid
	default:
		return msgResetInvalid
	}
}

// IsBlocked reports whether login is currently throttled.
func (s *Session) IsBlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Before(s.blockedUntil)
}

// LoginAttempts returns the consecutive-failure count.
func (s *Session) LoginAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginAttempts
}
