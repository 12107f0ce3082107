// Package api implements the HTTP transport for the inventory server:
// the fetch and mutate primitives consumed by the cache layer, envelope
// unwrapping, and mapping of server error payloads to user-facing text.
package api

import (
	"encoding/json"
	"fmt"
	"slices"
)

// envelope is the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Error is a failed fetch or mutate call. It keeps the raw error payload
// so callers can inspect field-level errors, and derives a single
// human-readable message for user notification.
type Error struct {
	Status  int
	Message string
	Errors  json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// FriendlyMessage reduces the error payload to one readable string.
// Server-side failures (5xx) and unrecognized payload shapes fall back
// to the given generic message; field-error objects yield their first
// message, string payloads pass through.
func (e *Error) FriendlyMessage(fallback string) string {
	if e.Status >= 500 || len(e.Errors) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(e.Errors, &s); err == nil && s != "" {
		return s
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Errors, &fields); err != nil || len(fields) == 0 {
		return fallback
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		raw := fields[k]
		var msgs []string
		if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
			return msgs[0]
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return fallback
}
