package ports

import "context"

// CredentialStore is the durable key-value surface holding session state
// across app restarts. Implementations must treat a missing key as "absent"
// (ok == false), never as an error; errors are reserved for real storage
// failures so they are never mistaken for a logged-out state.
//
// Write discipline: the session manager is the only writer of the
// session-related keys (accessToken, userType, userEmail). Other components
// receive a TokenReader.
type CredentialStore interface {
	TokenReader

	// Set persists value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key if present; removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
	// Clear removes every known session key, access token first, so an
	// interrupted clear still reads as "no session".
	Clear(ctx context.Context) error
}

// TokenReader is the read-only view of the credential store handed to
// components that must never write session keys.
type TokenReader interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}
