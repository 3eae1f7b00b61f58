// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/service"
)

// DefaultRefreshInterval is used when the configured interval is not positive.
const DefaultRefreshInterval = 30 * time.Second

type refreshWorker struct {
	refresher Refresher
	interval  time.Duration
	onResult  func(error)
	logger    *logger.Logger
}

// NewRefreshWorker creates a Worker that calls refresher.RefreshList every
// interval. onResult, if set, receives the outcome of every refresh that was
// not suppressed by the fetch governor.
func NewRefreshWorker(refresher Refresher, interval time.Duration, onResult func(error), log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if onResult == nil {
		onResult = func(error) {}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &refreshWorker{
		refresher: refresher,
		interval:  interval,
		onResult:  onResult,
		logger:    log.WithComponent("refresh-worker"),
	}
}

func (w *refreshWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.refresh(ctx)
		}
	}
}

func (w *refreshWorker) refresh(ctx context.Context) {
	err := w.refresher.RefreshList(ctx)
	switch {
	case errors.Is(err, service.ErrRefreshSuppressed):
		return
	case ctx.Err() != nil:
		return
	case err != nil:
		w.logger.Warn().Err(err).Msg("background refresh failed")
	}

	w.onResult(err)
}
