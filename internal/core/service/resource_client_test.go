package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
)

func TestResourceClient_ListIsAuthenticated(t *testing.T) {
	exec := &scriptedExecutor{respond: respondJSON(`[{"id":"1","name":"Plumbing","description":"d","visitCharge":25}]`)}
	client := NewResourceClient(exec, zerolog.Nop())

	var services []domain.Service
	require.NoError(t, client.List(context.Background(), "/services", &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Plumbing", services[0].Name)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, http.MethodGet, exec.calls[0].Method)
	assert.True(t, exec.calls[0].RequiresAuth)
}

func TestResourceClient_CreateReturnsServerObject(t *testing.T) {
	exec := &scriptedExecutor{respond: respondJSON(`{"id":"42","name":"Plumbing","description":"d","visitCharge":25}`)}
	client := NewResourceClient(exec, zerolog.Nop())

	var created domain.Service
	payload := domain.Service{Name: "Plumbing", Description: "d", VisitCharge: 25}
	require.NoError(t, client.Create(context.Background(), "/services", payload, &created))
	assert.Equal(t, "42", created.ID)
}

func TestResourceClient_EmptyIDIsLocalValidation(t *testing.T) {
	exec := &scriptedExecutor{}
	client := NewResourceClient(exec, zerolog.Nop())

	err := client.Update(context.Background(), "/services", "", domain.Service{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	err = client.Remove(context.Background(), "/services", "   ", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	err = client.Get(context.Background(), "/services", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	assert.Empty(t, exec.calls, "empty id must never invoke the executor")
}

func TestResourceClient_RemoveNotFoundPropagates(t *testing.T) {
	exec := &scriptedExecutor{respond: func(ports.RequestDescriptor, any) error {
		return domain.FromStatus(http.StatusNotFound, "service not found")
	}}
	client := NewResourceClient(exec, zerolog.Nop())

	err := client.Remove(context.Background(), "/services", "42", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, http.MethodDelete, exec.calls[0].Method)
	assert.Equal(t, "42", exec.calls[0].RouteID)
}

func TestResourceClient_UpdateSendsRouteID(t *testing.T) {
	exec := &scriptedExecutor{respond: respondJSON(`{"id":"7","name":"Cleaning","description":"d","visitCharge":30}`)}
	client := NewResourceClient(exec, zerolog.Nop())

	var updated domain.Service
	payload := domain.Service{Name: "Cleaning", Description: "d", VisitCharge: 30}
	require.NoError(t, client.Update(context.Background(), "/services", "7", payload, &updated))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, http.MethodPut, exec.calls[0].Method)
	assert.Equal(t, "/services", exec.calls[0].Path)
	assert.Equal(t, "7", exec.calls[0].RouteID)
	assert.Equal(t, "Cleaning", updated.Name)
}
