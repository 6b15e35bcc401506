package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
)

// ResourceClient is the generic CRUD wrapper over the request executor.
// Every call is authenticated; errors propagate unchanged so presentation
// policy lives in one place, the UI.
type ResourceClient struct {
	exec   ports.Executor
	logger zerolog.Logger
}

func NewResourceClient(exec ports.Executor, logger zerolog.Logger) *ResourceClient {
	return &ResourceClient{exec: exec, logger: logger}
}

// List fetches the collection at resourcePath into out.
func (c *ResourceClient) List(ctx context.Context, resourcePath string, out any) error {
	return c.do(ctx, ports.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         resourcePath,
		RequiresAuth: true,
	}, out)
}

// Get fetches a single resource by id.
func (c *ResourceClient) Get(ctx context.Context, resourcePath, id string, out any) error {
	if err := requireID(id); err != nil {
		return err
	}
	return c.do(ctx, ports.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         resourcePath,
		RouteID:      id,
		RequiresAuth: true,
	}, out)
}

// Create posts payload and decodes the server-returned resource into out.
func (c *ResourceClient) Create(ctx context.Context, resourcePath string, payload, out any) error {
	return c.do(ctx, ports.RequestDescriptor{
		Method:       http.MethodPost,
		Path:         resourcePath,
		Body:         payload,
		RequiresAuth: true,
	}, out)
}

// Update puts payload to the resource identified by id. An empty id is a
// local validation error and never reaches the network.
func (c *ResourceClient) Update(ctx context.Context, resourcePath, id string, payload, out any) error {
	if err := requireID(id); err != nil {
		return err
	}
	return c.do(ctx, ports.RequestDescriptor{
		Method:       http.MethodPut,
		Path:         resourcePath,
		RouteID:      id,
		Body:         payload,
		RequiresAuth: true,
	}, out)
}

// Remove deletes the resource identified by id, under the same empty-id rule
// as Update.
func (c *ResourceClient) Remove(ctx context.Context, resourcePath, id string, out any) error {
	if err := requireID(id); err != nil {
		return err
	}
	return c.do(ctx, ports.RequestDescriptor{
		Method:       http.MethodDelete,
		Path:         resourcePath,
		RouteID:      id,
		RequiresAuth: true,
	}, out)
}

func (c *ResourceClient) do(ctx context.Context, desc ports.RequestDescriptor, out any) error {
	if err := c.exec.Do(ctx, desc, out); err != nil {
		c.logger.Warn().Err(err).Str("method", desc.Method).Str("path", desc.Path).Msg("resource call failed")
		return err
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id is required")
	}
	return nil
}
