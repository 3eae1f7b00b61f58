package adapter

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/go-resty/resty/v2"
)

// plain text bodies longer than this are not shown to the user
const maxPlainMessageLen = 200

// largest delta-seconds value that still fits a time.Duration
const maxRetryAfterSeconds = math.MaxInt64 / int64(time.Second)

// mapHTTPError returns nil for 2xx replies and an [*HTTPError] otherwise.
func mapHTTPError(resp *resty.Response, now time.Time) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &HTTPError{
		StatusCode: resp.StatusCode(),
		Message:    extractMessage(resp.StatusCode(), resp.Body()),
		RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"), now),
	}
}

// extractMessage prefers the body's "message" field, then its "error" field,
// then a short plain-text body, and finally the status text.
func extractMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))

	var payload models.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	} else if trimmed != "" && !strings.HasPrefix(trimmed, "<") && len(trimmed) <= maxPlainMessageLen {
		return trimmed
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return "HTTP " + strconv.Itoa(status)
}

// parseRetryAfter accepts delta-seconds or an HTTP-date. Invalid or past
// values yield zero. Huge delta-seconds are capped at the largest
// representable duration.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	// out-of-range numbers come back saturated and are clamped below
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		if seconds < 0 {
			return 0
		}
		return time.Duration(min(seconds, maxRetryAfterSeconds)) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}

	return 0
}
