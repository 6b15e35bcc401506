// Package backend implements the HTTP request executor against the remote
// LocalKonnect backend. It normalizes every outcome into the domain error
// taxonomy and performs no retries, caching, or deduplication: each call is
// independent, and user-facing retry affordances are fresh calls.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/localkonnect/mobile-core/internal/core/domain"
	"github.com/localkonnect/mobile-core/internal/core/ports"
	"github.com/localkonnect/mobile-core/internal/metrics"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client executes request descriptors over HTTPS. It reads the access token
// through a read-only store view and never writes local state.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenReader
	logger  zerolog.Logger
}

// New builds a Client for the given backend origin. A non-positive timeout
// falls back to the default; the timeout bounds the whole request, after
// which the call resolves as a network error.
func New(baseURL string, timeout time.Duration, tokens ports.TokenReader, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Do executes one request and decodes a 2xx body into out (out may be nil).
// Failures are *domain.APIError values wrapping the taxonomy kinds.
func (c *Client) Do(ctx context.Context, desc ports.RequestDescriptor, out any) error {
	start := time.Now()
	err := c.do(ctx, desc, out)
	outcome := outcomeFor(err)
	metrics.RequestsTotal.WithLabelValues(desc.Method, outcome).Inc()
	metrics.RequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) do(ctx context.Context, desc ports.RequestDescriptor, out any) error {
	var bearer string
	if desc.RequiresAuth {
		token, ok, err := c.tokens.Get(ctx, domain.KeyAccessToken)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		// Fail fast: an authenticated-only resource is never called
		// without a token.
		if !ok || token == "" {
			return &domain.APIError{Kind: domain.ErrUnauthenticated, Message: "no access token stored"}
		}
		bearer = token
	}

	var body io.Reader
	if desc.Body != nil {
		encoded, err := json.Marshal(desc.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, c.url(desc), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if desc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", desc.Method).Str("path", desc.Path).Str("request_id", requestID).Msg("request failed")
		return domain.Network(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Network(err)
	}

	if resp.StatusCode >= 400 {
		apiErr := domain.FromStatus(resp.StatusCode, serverMessage(payload))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("method", desc.Method).
			Str("path", desc.Path).
			Str("request_id", requestID).
			Msg(apiErr.Message)
		return apiErr
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &domain.APIError{Kind: domain.ErrServer, Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func (c *Client) url(desc ports.RequestDescriptor) string {
	u := c.baseURL + desc.Path
	if desc.RouteID != "" {
		u += "/" + desc.RouteID
	}
	return u
}

// serverMessage pulls the human-readable message out of an error body. The
// backend uses both {"error": ...} and {"message": ...} envelopes.
func serverMessage(payload []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrServer):
		return "server_error"
	default:
		return "internal"
	}
}
