package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyMessageFieldErrors(t *testing.T) {
	e := &Error{
		Status: 400,
		Errors: json.RawMessage(`{"return_qty":["Return quantity cannot be greater than stock count."]}`),
	}
	assert.Equal(t,
		"Return quantity cannot be greater than stock count.",
		e.FriendlyMessage("Failed to add data"))
}

func TestFriendlyMessageStringPayload(t *testing.T) {
	e := &Error{Status: 400, Errors: json.RawMessage(`"plain error"`)}
	assert.Equal(t, "plain error", e.FriendlyMessage("fallback"))
}

func TestFriendlyMessageStringField(t *testing.T) {
	e := &Error{Status: 400, Errors: json.RawMessage(`{"stock":"must be positive"}`)}
	assert.Equal(t, "must be positive", e.FriendlyMessage("fallback"))
}

func TestFriendlyMessageServerErrorFallsBack(t *testing.T) {
	e := &Error{
		Status: 500,
		Errors: json.RawMessage(`{"stock":["detail the user must not see"]}`),
	}
	assert.Equal(t, "fallback", e.FriendlyMessage("fallback"))
}

func TestFriendlyMessageUnrecognizedShapes(t *testing.T) {
	for _, raw := range []string{``, `[]`, `{}`, `42`, `{"f":[]}`} {
		e := &Error{Status: 400, Errors: json.RawMessage(raw)}
		assert.Equal(t, "fallback", e.FriendlyMessage("fallback"), "payload %q", raw)
	}
}

func TestFriendlyMessagePicksFirstFieldDeterministically(t *testing.T) {
	e := &Error{
		Status: 400,
		Errors: json.RawMessage(`{"b_field":["second"],"a_field":["first"]}`),
	}
	assert.Equal(t, "first", e.FriendlyMessage("fallback"))
}
