package ports

import (
	"context"

	"github.com/localkonnect/mobile-core/internal/core/domain"
)

// SessionService owns the client session state machine and is the sole
// writer of session keys in the credential store. Operations returning a
// route guarantee a non-empty navigation target.
type SessionService interface {
	// State returns the current session state.
	State() domain.SessionState

	// Resume inspects stored credentials at startup and returns where the
	// UI should land: the role's dashboard, or the onboarding route when
	// no usable token is stored.
	Resume(ctx context.Context) (route string, err error)

	// Login authenticates, persists token/role/email, and returns the
	// role's dashboard route. On failure the state stays anonymous.
	Login(ctx context.Context, email, password string) (route string, err error)

	// Signup submits a registration and moves the session to
	// pending-verification. No credential is stored at this point.
	Signup(ctx context.Context, email, userType string) error

	// VerifyOtp confirms the signup OTP. Expired codes are rejected
	// locally without a network call.
	VerifyOtp(ctx context.Context, email, code string) error

	// ResendOtp requests a fresh signup OTP and resets the expiry window.
	ResendOtp(ctx context.Context, email string) error

	// CreatePassword completes signup. The password policy (minimum
	// length, matching confirmation) is checked locally before any
	// network call. Returns the post-auth route.
	CreatePassword(ctx context.Context, password, confirmPassword string) (route string, err error)

	// ForgotPassword sends a reset OTP. Session state is unchanged;
	// calling it again is the resend and resets the expiry window.
	ForgotPassword(ctx context.Context, email string) error

	// VerifyResetOtp confirms the reset OTP under the same local expiry
	// rule as signup verification.
	VerifyResetOtp(ctx context.Context, email, code string) error

	// ResetPassword sets a new password after a verified reset OTP,
	// applying the same local password policy as CreatePassword.
	ResetPassword(ctx context.Context, email, password, confirmPassword string) error

	// Logout clears the credential store and returns to anonymous. The
	// state transition happens even when the store clear fails.
	Logout(ctx context.Context) error
}
