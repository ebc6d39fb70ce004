package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("channel"), 404},
		{"conflict", Conflict("channel member"), 409},
		{"invalid argument", InvalidArgument("perPage must be positive"), 400},
		{"unauthorized", Unauthorized("not a channel member"), 401},
		{"store unavailable", StoreUnavailable(errors.New("timeout")), 503},
		{"unknown error", errors.New("boom"), 500},
		{"nil-adjacent wrap", fmt.Errorf("outer: %w", NotFound("workspace")), 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("posting chat: %w", Unauthorized("not a channel member"))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMessagesCarryContext(t *testing.T) {
	assert.EqualError(t, NotFound("channel"), "channel: not found")
	assert.EqualError(t, StoreUnavailable(errors.New("timeout")), "timeout: store unavailable")
}
