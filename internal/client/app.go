package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/tui"
)

// App owns the UI and the local storage for one process run.
type App struct {
	ui       UI
	storages io.Closer
	logger   *logger.Logger
}

func NewApp(ui UI, storages io.Closer, log *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errors.New("client app: nil ui")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &App{ui: ui, storages: storages, logger: log.WithComponent("app")}, nil
}

// Run blocks until the UI exits. Quitting the UI or cancelling ctx is a
// normal exit.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if a.storages == nil {
			return
		}
		if closeErr := a.storages.Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("failed to close local storage")
			err = errors.Join(err, fmt.Errorf("close storage: %w", closeErr))
		}
	}()

	a.logger.Info().Msg("client started")

	err = a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit):
		a.logger.Info().Msg("client stopped by user")
		return nil
	case ctx.Err() != nil:
		a.logger.Info().Msg("client interrupted")
		return nil
	}

	return fmt.Errorf("run ui: %w", err)
}
