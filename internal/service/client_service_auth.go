package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	guard   SessionGuard
	logger  *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, guard SessionGuard, log *logger.Logger) ClientAuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &clientAuthService{adapter: serverAdapter, guard: guard, logger: log.WithComponent("auth")}
}

func (a *clientAuthService) Login(ctx context.Context, credentials models.Credentials) error {
	token, err := a.adapter.Login(ctx, credentials)
	if err != nil {
		if errors.Is(err, adapter.ErrMissingToken) {
			return &RejectedError{Message: app.MsgLoginNoToken, Err: err}
		}
		return mapUnauthenticatedError(err, app.MsgLoginFailed)
	}

	if err = a.guard.Start(ctx, token); err != nil {
		return &RejectedError{Message: app.MsgLoginNoToken, Err: err}
	}

	a.logger.Info().Msg("logged in")
	return nil
}

func (a *clientAuthService) Register(ctx context.Context, registration models.Registration) error {
	if registration.Password != registration.ConfirmPassword {
		return &ValidationError{Reason: app.MsgPasswordsDoNotMatch}
	}

	token, err := a.adapter.Register(ctx, registration)
	if err != nil {
		if errors.Is(err, adapter.ErrMissingToken) {
			return &RejectedError{Message: app.MsgRegistrationFailed, Err: err}
		}
		return mapUnauthenticatedError(err, app.MsgRegistrationFailed)
	}

	if err = a.guard.Start(ctx, token); err != nil {
		return &RejectedError{Message: app.MsgRegistrationFailed, Err: fmt.Errorf("store session: %w", err)}
	}

	a.logger.Info().Msg("registered")
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) {
	a.guard.Invalidate(ctx)
	a.logger.Info().Msg("logged out")
}
