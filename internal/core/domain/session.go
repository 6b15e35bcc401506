package domain

// SessionState represents the externally observable lifecycle state of the
// client session.
type SessionState string

const (
	// StateAnonymous means no credentials are held.
	StateAnonymous SessionState = "anonymous"
	// StatePendingVerification means a signup was submitted and an OTP is awaited.
	StatePendingVerification SessionState = "pending_verification"
	// StateAuthenticatedIncomplete means the OTP was verified but no password exists yet.
	StateAuthenticatedIncomplete SessionState = "authenticated_incomplete"
	// StateAuthenticated means the session holds a valid token and role.
	StateAuthenticated SessionState = "authenticated"
)

// validTransitions defines the allowed session state machine transitions.
// Logout is representable from any state, so every state may fall back to
// anonymous.
var validTransitions = map[SessionState][]SessionState{
	StateAnonymous:               {StatePendingVerification, StateAuthenticated},
	StatePendingVerification:     {StateAuthenticatedIncomplete, StateAnonymous},
	StateAuthenticatedIncomplete: {StateAuthenticated, StateAnonymous},
	StateAuthenticated:           {StateAnonymous},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the locally held authenticated-identity state. Role is only
// meaningful while Token is present.
type Session struct {
	Token string
	Role  string
}

// Credential store keys. The key names match the backend's mobile clients so
// an upgraded app finds its existing session.
const (
	KeyAccessToken  = "accessToken"
	KeyUserType     = "userType"
	KeyUserEmail    = "userEmail"
	KeyProfileImage = "profileImage"
)

// KnownKeys lists every key a Clear must remove. KeyAccessToken is first:
// token absence is the single source of truth for "logged out", so a clear
// interrupted after the first removal still leaves a consistent no-session
// state.
var KnownKeys = []string{KeyAccessToken, KeyUserType, KeyUserEmail, KeyProfileImage}
