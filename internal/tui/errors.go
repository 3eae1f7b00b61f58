// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-secret-keeper/internal/service"
)

// ErrUserQuit is returned by Run when the user closed the program.
var ErrUserQuit = errors.New("user quit the program")

// errorText is the inline banner text for err.
func errorText(err error) string {
	return service.UserMessage(err)
}
