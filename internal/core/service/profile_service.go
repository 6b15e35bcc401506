package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
)

const profilePicturePath = "/profile/picture"

// ProfileService manages the profile picture resource, mirroring the current
// URI into the credential store's profileImage key. The local copy is a cache
// only; the backend stays authoritative.
type ProfileService struct {
	resources ports.ResourceClient
	store     ports.CredentialStore
	logger    zerolog.Logger
}

func NewProfileService(resources ports.ResourceClient, store ports.CredentialStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{resources: resources, store: store, logger: logger}
}

// Picture returns the user's picture URI, serving the local cache when
// present. A backend 404 means no picture is set and is not an error.
func (p *ProfileService) Picture(ctx context.Context, userID string) (string, error) {
	cached, ok, err := p.store.Get(ctx, domain.KeyProfileImage)
	if err != nil {
		return "", err
	}
	if ok && cached != "" {
		return cached, nil
	}

	var pic domain.ProfilePicture
	if err := p.resources.Get(ctx, profilePicturePath, userID, &pic); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if pic.ProfileImage != "" {
		if err := p.store.Set(ctx, domain.KeyProfileImage, pic.ProfileImage); err != nil {
			p.logger.Warn().Err(err).Msg("profile image cache write failed")
		}
	}
	return pic.ProfileImage, nil
}

// UpdatePicture uploads a new picture URI, then refreshes the local cache.
// The backend write comes first so the cache never points at an image the
// server rejected.
func (p *ProfileService) UpdatePicture(ctx context.Context, userID, uri string) error {
	if uri == "" {
		return domain.Invalid("image uri is required")
	}
	payload := domain.ProfilePicture{ProfileImage: uri}
	if err := p.resources.Update(ctx, profilePicturePath, userID, payload, nil); err != nil {
		return err
	}
	if err := p.store.Set(ctx, domain.KeyProfileImage, uri); err != nil {
		p.logger.Warn().Err(err).Msg("profile image cache write failed")
		return err
	}
	return nil
}

// RemovePicture deletes the picture remotely and drops the local cache.
func (p *ProfileService) RemovePicture(ctx context.Context, userID string) error {
	if err := p.resources.Remove(ctx, profilePicturePath, userID, nil); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return p.store.Remove(ctx, domain.KeyProfileImage)
}
