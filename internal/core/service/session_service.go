package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
	"github.com/localkonnect/mobile-core/internal/metrics"
)

const defaultOTPTTL = 3 * time.Minute

// SessionService implements the client session state machine. It is the only
// writer of session keys in the credential store and serializes all state
// changes behind a single mutex.
type SessionService struct {
	exec   ports.Executor
	store  ports.CredentialStore
	otpTTL time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu           sync.Mutex
	state        domain.SessionState
	pendingEmail string
	pendingType  string
	otpDeadline  time.Time

	resetEmail    string
	resetDeadline time.Time
	resetVerified bool
}

func NewSessionService(exec ports.Executor, store ports.CredentialStore, otpTTL time.Duration, logger zerolog.Logger) *SessionService {
	if otpTTL <= 0 {
		otpTTL = defaultOTPTTL
	}
	return &SessionService{
		exec:   exec,
		store:  store,
		otpTTL: otpTTL,
		logger: logger,
		now:    time.Now,
		state:  domain.StateAnonymous,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type passwordRequest struct {
	Email           string `json:"email,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		UserType string `json:"userType"`
		Email    string `json:"email"`
	} `json:"user"`
}

// State returns the current session state.
func (s *SessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resume decides the startup destination from stored credentials. A stored
// JWT whose exp claim has elapsed counts as confirmed-invalid: the store is
// cleared and the user lands on the login route.
func (s *SessionService) Resume(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("credential store read failed during resume")
		return domain.RouteLogin, fmt.Errorf("resume session: %w", err)
	}
	if !ok || token == "" {
		s.state = domain.StateAnonymous
		return domain.RouteOnboarding, nil
	}

	if tokenExpired(token, s.now()) {
		s.logger.Info().Msg("stored token expired, clearing session")
		metrics.AuthEventsTotal.WithLabelValues("session_expired").Inc()
		s.state = domain.StateAnonymous
		if err := s.store.Clear(ctx); err != nil {
			return domain.RouteLogin, fmt.Errorf("clear expired session: %w", err)
		}
		return domain.RouteLogin, nil
	}

	role, _, err := s.store.Get(ctx, domain.KeyUserType)
	if err != nil {
		return domain.RouteLogin, fmt.Errorf("resume session: %w", err)
	}

	s.state = domain.StateAuthenticated
	metrics.AuthEventsTotal.WithLabelValues("session_resumed").Inc()
	return domain.RouteFor(role), nil
}

// Login authenticates and persists the session before returning a route, so
// the caller never navigates on a token that failed to persist.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkInput(credentialsInput{Email: email, Password: password}); err != nil {
		return "", err
	}
	if err := s.requireState(domain.StateAnonymous, domain.StateAuthenticated); err != nil {
		return "", err
	}

	var resp authResponse
	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login_failed").Inc()
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return "", err
	}
	if resp.Token == "" {
		return "", &domain.APIError{Kind: domain.ErrServer, Message: "login response missing token"}
	}

	if err := s.persistSession(ctx, resp.Token, resp.User.UserType, email); err != nil {
		return "", err
	}

	s.state = domain.StateAuthenticated
	metrics.AuthEventsTotal.WithLabelValues("login").Inc()
	s.logger.Info().Str("role", domain.NormalizeRole(resp.User.UserType)).Msg("logged in")
	return domain.RouteFor(resp.User.UserType), nil
}

// Signup submits a registration and opens the OTP window. No credential is
// written until the OTP is verified.
func (s *SessionService) Signup(ctx context.Context, email, userType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkInput(signupInput{Email: email, UserType: userType}); err != nil {
		return err
	}
	if err := s.requireState(domain.StateAnonymous, domain.StatePendingVerification); err != nil {
		return err
	}

	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body:   signupRequest{Email: email, UserType: userType},
	}, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("signup failed")
		return err
	}

	s.state = domain.StatePendingVerification
	s.pendingEmail = email
	s.pendingType = userType
	s.otpDeadline = s.now().Add(s.otpTTL)
	metrics.AuthEventsTotal.WithLabelValues("signup").Inc()
	return nil
}

// VerifyOtp confirms the signup OTP. An elapsed window rejects locally; only
// ResendOtp can reopen it.
func (s *SessionService) VerifyOtp(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		return domain.Invalid("otp is required")
	}
	if err := s.requireState(domain.StatePendingVerification, domain.StateAuthenticatedIncomplete); err != nil {
		return err
	}
	if s.now().After(s.otpDeadline) {
		return &domain.APIError{Kind: domain.ErrOTPExpired, Message: "otp expired, request a new code"}
	}

	var resp authResponse
	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/signup-verify",
		Body:   otpRequest{Email: email, OTP: code},
	}, &resp)
	if err != nil {
		s.logger.Warn().Err(err).Msg("otp verification failed")
		return err
	}

	// The verify response carries the partial-session token. It must be
	// durable before the state advances.
	if resp.Token != "" {
		if err := s.store.Set(ctx, domain.KeyAccessToken, resp.Token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}

	s.state = domain.StateAuthenticatedIncomplete
	metrics.AuthEventsTotal.WithLabelValues("otp_verified").Inc()
	return nil
}

// ResendOtp issues a fresh signup call and resets the full OTP window.
func (s *SessionService) ResendOtp(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePendingVerification {
		return &domain.APIError{Kind: domain.ErrInvalidTransition, Message: "no signup awaiting verification"}
	}
	if email == "" {
		email = s.pendingEmail
	}

	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body:   signupRequest{Email: email, UserType: s.pendingType},
	}, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("otp resend failed")
		return err
	}

	s.otpDeadline = s.now().Add(s.otpTTL)
	metrics.OTPResendsTotal.Inc()
	return nil
}

// CreatePassword completes signup. The password policy is enforced locally
// before any network call.
func (s *SessionService) CreatePassword(ctx context.Context, password, confirmPassword string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkInput(passwordInput{Password: password, ConfirmPassword: confirmPassword}); err != nil {
		return "", err
	}
	if err := s.requireState(domain.StateAuthenticatedIncomplete, domain.StateAuthenticated); err != nil {
		return "", err
	}

	var resp authResponse
	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method:       http.MethodPost,
		Path:         "/auth/create-password",
		Body:         passwordRequest{Email: s.pendingEmail, Password: password, ConfirmPassword: confirmPassword},
		RequiresAuth: true,
	}, &resp)
	if err != nil {
		s.logger.Warn().Err(err).Msg("create password failed")
		// A 401 here means the backend rejected the partial-session
		// token outright: confirmed invalid, so the store is cleared
		// and the signup must restart.
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.state = domain.StateAnonymous
			s.pendingEmail = ""
			s.pendingType = ""
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				s.logger.Error().Err(clearErr).Msg("credential store clear failed")
			}
		}
		return "", err
	}

	token := resp.Token
	if token == "" {
		// Keep the token issued at verification when the backend does
		// not rotate it here.
		stored, _, err := s.store.Get(ctx, domain.KeyAccessToken)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		token = stored
	}
	if err := s.persistSession(ctx, token, resp.User.UserType, s.pendingEmail); err != nil {
		return "", err
	}

	s.state = domain.StateAuthenticated
	s.pendingEmail = ""
	s.pendingType = ""
	metrics.AuthEventsTotal.WithLabelValues("password_created").Inc()
	return domain.RouteFor(resp.User.UserType), nil
}

// ForgotPassword sends a reset OTP without changing session state. Calling it
// again acts as the resend and resets the window.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkInput(emailInput{Email: email}); err != nil {
		return err
	}

	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password/send-otp",
		Body:   emailRequest{Email: email},
	}, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("forgot password send failed")
		return err
	}

	if s.resetEmail == email && !s.resetDeadline.IsZero() {
		metrics.OTPResendsTotal.Inc()
	}
	s.resetEmail = email
	s.resetDeadline = s.now().Add(s.otpTTL)
	s.resetVerified = false
	return nil
}

// VerifyResetOtp confirms the password-reset OTP under the same local expiry
// rule as signup verification.
func (s *SessionService) VerifyResetOtp(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		return domain.Invalid("otp is required")
	}
	if s.resetEmail == "" {
		return domain.Invalid("no password reset in progress")
	}
	// The OTP window belongs to the email the code was sent to.
	if email == "" {
		email = s.resetEmail
	}
	if email != s.resetEmail {
		return domain.Invalid("password reset was requested for a different email")
	}
	if s.now().After(s.resetDeadline) {
		return &domain.APIError{Kind: domain.ErrOTPExpired, Message: "otp expired, request a new code"}
	}

	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password/verify-otp",
		Body:   otpRequest{Email: email, OTP: code},
	}, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reset otp verification failed")
		return err
	}

	s.resetVerified = true
	return nil
}

// ResetPassword sets a new password after a verified reset OTP. The session
// stays anonymous; the user logs in with the new password afterwards.
func (s *SessionService) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.resetVerified {
		return domain.Invalid("reset otp not verified")
	}
	if email == "" {
		email = s.resetEmail
	}
	if email != s.resetEmail {
		return domain.Invalid("password reset was requested for a different email")
	}
	if err := checkInput(passwordInput{Password: password, ConfirmPassword: confirmPassword}); err != nil {
		return err
	}

	err := s.exec.Do(ctx, ports.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password/reset",
		Body:   passwordRequest{Email: email, Password: password, ConfirmPassword: confirmPassword},
	}, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("password reset failed")
		return err
	}

	s.resetEmail = ""
	s.resetDeadline = time.Time{}
	s.resetVerified = false
	return nil
}

// Logout clears the credential store and returns to anonymous. The state
// falls back to anonymous even when the clear fails, so the UI never shows a
// logged-in shell over a broken store; the error is still surfaced.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.StateAnonymous
	s.pendingEmail = ""
	s.pendingType = ""
	metrics.AuthEventsTotal.WithLabelValues("logout").Inc()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("credential store clear failed")
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// persistSession writes the session keys token-first. A partial failure
// rolls the store back to a consistent no-session state and fails the
// operation, so navigation never happens on an unpersisted session.
func (s *SessionService) persistSession(ctx context.Context, token, role, email string) error {
	writes := []struct{ key, value string }{
		{domain.KeyAccessToken, token},
		{domain.KeyUserType, role},
		{domain.KeyUserEmail, email},
	}
	for _, w := range writes {
		if err := s.store.Set(ctx, w.key, w.value); err != nil {
			s.logger.Error().Err(err).Str("key", w.key).Msg("credential store write failed")
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				s.logger.Error().Err(clearErr).Msg("rollback clear failed")
			}
			return fmt.Errorf("persist session: %w", err)
		}
	}
	return nil
}

// requireState gates an event on the single state it may fire from; the
// caller applies the new state only after the backing call and store writes
// succeed. Checking the source state matters because two events can share a
// target: login and create-password both end authenticated, but each is
// legal from exactly one state.
func (s *SessionService) requireState(from, next domain.SessionState) error {
	if s.state != from || !from.CanTransitionTo(next) {
		return &domain.APIError{
			Kind:    domain.ErrInvalidTransition,
			Message: fmt.Sprintf("cannot move from %s to %s", s.state, next),
		}
	}
	return nil
}

// tokenExpired reports whether token is a JWT with an elapsed exp claim. The
// client holds no signing secret, so the claims are read unverified; opaque
// tokens are assumed live and left for the backend to reject.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
