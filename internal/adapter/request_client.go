package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
	"github.com/MKhiriev/go-secret-keeper/internal/utils"
	"github.com/MKhiriev/go-secret-keeper/models"
)

// Response is a received 2xx or non-2xx reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return nil
}

type httpRequestClient struct {
	client   *utils.HTTPClient
	sessions store.SessionStore
	logger   *logger.Logger
	now      func() time.Time
}

// NewHTTPRequestClient constructs a resty-backed [RequestClient]. The bearer
// credential is read from sessions on every call, so a new login is picked up
// without rebuilding the client.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a URL.
func NewHTTPRequestClient(cfg config.Adapter, sessions store.SessionStore, buildInfo models.AppBuildInfo, logger *logger.Logger) (RequestClient, error) {
	return newHTTPRequestClient(cfg, sessions, buildInfo, logger)
}

func newHTTPRequestClient(cfg config.Adapter, sessions store.SessionStore, buildInfo models.AppBuildInfo, logger *logger.Logger) (*httpRequestClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRequestClient{
		client:   utils.NewHTTPClient(baseURL, cfg.RequestTimeout, buildInfo.UserAgent()),
		sessions: sessions,
		logger:   logger.WithComponent("request_client"),
		now:      time.Now,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [RequestClient].
func (c *httpRequestClient) Send(ctx context.Context, method, path string, body any) (*Response, error) {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = utils.NewRequestID()
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if token := c.bearer(ctx); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("func", "*httpRequestClient.Send").
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Msg("request failed without response")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetworkFailure, method, path, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}

	event := c.logger.Debug()
	if out.StatusCode >= http.StatusBadRequest {
		event = c.logger.Info()
	}
	event.Str("func", "*httpRequestClient.Send").
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", out.StatusCode).
		Dur("duration", resp.Time()).
		Msg("request completed")

	if err = mapHTTPError(resp, c.now()); err != nil {
		return out, fmt.Errorf("%s %s: %w", method, path, err)
	}

	return out, nil
}

// bearer returns the stored credential or "" when there is none.
func (c *httpRequestClient) bearer(ctx context.Context) string {
	token, err := c.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			c.logger.Err(err).Str("func", "*httpRequestClient.bearer").Msg("failed to read session")
		}
		return ""
	}
	return strings.TrimSpace(token)
}
