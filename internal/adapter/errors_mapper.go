// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx reply into one of the package sentinels.
// The set mirrors the statuses the VoiceNudge server actually emits: 400 for
// malformed input, 401/403 from the session middleware, 404 for a missing
// user or task, 409 for a duplicate registration email, 500 for voice
// processing failures. Anything else falls through to a plain error.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	detail := errorDetail(resp.Body(), code)

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, detail)
	default:
		return fmt.Errorf("http %d: %s", code, detail)
	}
}

// errorDetail pulls the message out of the server's {"error": "..."} JSON
// body. Falls back to the raw body (404s from unmatched routes come back as
// plain text) and finally to the standard status text.
func errorDetail(body []byte, code int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(code)
}
