package ports

import "context"

// ProfileService manages the profile picture resource and mirrors the
// current URI into the credential store's profileImage key. It never writes
// session keys.
type ProfileService interface {
	// Picture fetches the stored picture URI for the user, preferring the
	// local cache; an empty string means no picture is set.
	Picture(ctx context.Context, userID string) (string, error)
	// UpdatePicture uploads a new picture URI and refreshes the local cache.
	UpdatePicture(ctx context.Context, userID, uri string) error
	// RemovePicture deletes the picture remotely and locally.
	RemovePicture(ctx context.Context, userID string) error
}
