package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
)

func newProfileFixture(respond func(ports.RequestDescriptor, any) error) (*ProfileService, *scriptedExecutor, *memStore) {
	exec := &scriptedExecutor{respond: respond}
	store := newMemStore()
	resources := NewResourceClient(exec, zerolog.Nop())
	return NewProfileService(resources, store, zerolog.Nop()), exec, store
}

func TestProfile_PictureServesCache(t *testing.T) {
	svc, exec, store := newProfileFixture(nil)
	store.values[domain.KeyProfileImage] = "file:///cached.png"

	uri, err := svc.Picture(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "file:///cached.png", uri)
	assert.Empty(t, exec.calls, "cached picture must not hit the backend")
}

func TestProfile_PictureFetchesAndCaches(t *testing.T) {
	svc, exec, store := newProfileFixture(respondJSON(`{"profileImage":"https://cdn/p.png"}`))

	uri, err := svc.Picture(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/p.png", uri)
	assert.Equal(t, "https://cdn/p.png", store.values[domain.KeyProfileImage])
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "u1", exec.calls[0].RouteID)
}

func TestProfile_PictureNotFoundMeansUnset(t *testing.T) {
	svc, _, _ := newProfileFixture(func(ports.RequestDescriptor, any) error {
		return domain.FromStatus(404, "no picture")
	})

	uri, err := svc.Picture(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestProfile_UpdateWritesOnlyImageKey(t *testing.T) {
	svc, _, store := newProfileFixture(nil)

	require.NoError(t, svc.UpdatePicture(context.Background(), "u1", "file:///new.png"))
	assert.Equal(t, "file:///new.png", store.values[domain.KeyProfileImage])
	_, hasToken := store.values[domain.KeyAccessToken]
	assert.False(t, hasToken, "profile service must never write session keys")
}

func TestProfile_RemoveDropsLocalCache(t *testing.T) {
	svc, _, store := newProfileFixture(nil)
	store.values[domain.KeyProfileImage] = "stale"

	require.NoError(t, svc.RemovePicture(context.Background(), "u1"))
	_, ok := store.values[domain.KeyProfileImage]
	assert.False(t, ok)
}
