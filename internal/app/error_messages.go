// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the client.
//
// All Msg* constants are shown in the terminal UI as banners or inline form
// errors. Keeping them in one place ensures consistent wording across pages.
package app

const (
	// MsgRateLimitedRetrying is shown while a rate-limited list refresh
	// waits for its next automatic retry.
	MsgRateLimitedRetrying = "Too many requests. Retrying..."

	// MsgRateLimited is shown when automatic retries are exhausted.
	MsgRateLimited = "Too many requests. Please wait a moment and try again."

	// MsgSessionExpired is shown on the entry page after the backend
	// rejected the stored credential.
	MsgSessionExpired = "Your session has expired. Please log in again."

	// MsgNetworkFailure is shown when no response was received.
	MsgNetworkFailure = "Cannot reach the server. Check your connection and try again."

	// MsgUnexpectedError is the fallback for errors without a better text.
	MsgUnexpectedError = "Something went wrong. Please try again."

	// MsgLoginFailed is the fallback when a login is rejected without a
	// backend message.
	MsgLoginFailed = "Login failed"

	// MsgLoginNoToken is shown when a login reply carries no token.
	MsgLoginNoToken = "Login failed: No token received"

	// MsgRegistrationFailed is the fallback when a registration is rejected
	// without a backend message.
	MsgRegistrationFailed = "Registration failed"

	// MsgPasswordsDoNotMatch is the register form confirmation error.
	MsgPasswordsDoNotMatch = "Passwords do not match"

	// MsgTitleRequired is the secret form error for an empty title.
	MsgTitleRequired = "Title is required"

	// MsgCreateFailed is the fallback when a create is rejected without a
	// backend message.
	MsgCreateFailed = "Failed to create secret"

	// MsgInvalidResponseFormat is shown when the generator reply has no
	// password.
	MsgInvalidResponseFormat = "Invalid response format"

	// MsgGenerateFailed is the generator fallback error.
	MsgGenerateFailed = "Failed to generate password. Please try again."

	// MsgGeneratorRateLimited is shown when the generator was rate limited.
	MsgGeneratorRateLimited = "Too many requests. Please wait a moment before trying again."

	// MsgGeneratorBusy is shown when a generation is requested during the
	// cooldown.
	MsgGeneratorBusy = "Please wait before generating another password."

	// MsgRefreshSuppressed is shown when a manual refresh was dropped by the
	// fetch governor.
	MsgRefreshSuppressed = "Refresh already in progress."
)
