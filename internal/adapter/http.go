package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
	"github.com/MKhiriev/go-secret-keeper/models"
)

// Backend routes.
const (
	loginPath            = "/auth/api/login"
	registerPath         = "/auth/api/register"
	generatePasswordPath = "/secret/api/generatepassword"
	listSecretsPath      = "/secret/api/list"
	createSecretPath     = "/secret/api/create"
	updateSecretPath     = "/secret/api/update/"
	deleteSecretPath     = "/secret/api/delete/"
)

type httpServerAdapter struct {
	*httpRequestClient
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress (a bare "host:port" gets the http scheme) and configures
// the request timeout and User-Agent of the underlying client.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.Adapter, sessions store.SessionStore, buildInfo models.AppBuildInfo, logger *logger.Logger) (ServerAdapter, error) {
	rc, err := newHTTPRequestClient(cfg, sessions, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &httpServerAdapter{httpRequestClient: rc}, nil
}

// Login implements [ServerAdapter]. POST /auth/api/login.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	resp, err := h.Send(ctx, http.MethodPost, loginPath, credentials)
	if err != nil {
		return "", err
	}

	var envelope models.Response[models.TokenData]
	if err = resp.Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}

	token := strings.TrimSpace(envelope.Data.Token)
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

// Register implements [ServerAdapter]. POST /auth/api/register.
func (h *httpServerAdapter) Register(ctx context.Context, registration models.Registration) (string, error) {
	resp, err := h.Send(ctx, http.MethodPost, registerPath, registration)
	if err != nil {
		return "", err
	}

	var body models.RegisterResponse
	if err = resp.Decode(&body); err != nil {
		return "", fmt.Errorf("decode register response: %w", err)
	}

	token := strings.TrimSpace(body.Token)
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

// GeneratePassword implements [ServerAdapter]. POST /secret/api/generatepassword.
func (h *httpServerAdapter) GeneratePassword(ctx context.Context, req models.GeneratePasswordRequest) (string, error) {
	resp, err := h.Send(ctx, http.MethodPost, generatePasswordPath, req)
	if err != nil {
		return "", err
	}

	var envelope models.Response[models.GeneratedPassword]
	if err = resp.Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode generate password response: %w", err)
	}

	return envelope.Data.Password, nil
}

// ListSecrets implements [ServerAdapter]. GET /secret/api/list.
// A missing secrets array is returned as an empty list.
func (h *httpServerAdapter) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	resp, err := h.Send(ctx, http.MethodGet, listSecretsPath, nil)
	if err != nil {
		return nil, err
	}

	var envelope models.Response[models.SecretsList]
	if err = resp.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	if envelope.Data.Secrets == nil {
		return []models.Secret{}, nil
	}
	return envelope.Data.Secrets, nil
}

// CreateSecret implements [ServerAdapter]. POST /secret/api/create.
func (h *httpServerAdapter) CreateSecret(ctx context.Context, fields models.SecretFields) error {
	resp, err := h.Send(ctx, http.MethodPost, createSecretPath, fields)
	if err != nil {
		return err
	}

	var envelope models.Response[any]
	if err = resp.Decode(&envelope); err != nil {
		return fmt.Errorf("decode create response: %w", err)
	}

	if envelope.Code != http.StatusCreated {
		return &EnvelopeError{Code: envelope.Code, Message: strings.TrimSpace(envelope.Message)}
	}

	return nil
}

// UpdateSecret implements [ServerAdapter]. PUT /secret/api/update/{id}.
//
// When the reply carries no record, the sent fields with id are returned as
// the canonical record.
func (h *httpServerAdapter) UpdateSecret(ctx context.Context, id models.SecretID, fields models.SecretFields) (models.Secret, error) {
	resp, err := h.Send(ctx, http.MethodPut, updateSecretPath+url.PathEscape(id.String()), fields)
	if err != nil {
		return models.Secret{}, err
	}

	var envelope models.Response[models.SecretData]
	if len(resp.Body) > 0 {
		if err = resp.Decode(&envelope); err != nil {
			return models.Secret{}, fmt.Errorf("decode update response: %w", err)
		}
	}

	updated := envelope.Data.Secret
	if updated.ID == "" {
		return fields.WithID(id), nil
	}

	return updated, nil
}

// DeleteSecret implements [ServerAdapter]. DELETE /secret/api/delete/{id}.
func (h *httpServerAdapter) DeleteSecret(ctx context.Context, id models.SecretID) error {
	_, err := h.Send(ctx, http.MethodDelete, deleteSecretPath+url.PathEscape(id.String()), nil)
	return err
}
