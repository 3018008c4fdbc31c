package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflectError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk gone")
	err := fmt.Errorf("reflecting: %w", &ReflectError{
		Code:    ReflectErrUpstreamUnavailable,
		Message: "could not load schedule",
		Source:  SourceSchedule,
		Err:     cause,
	})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsUpstreamUnavailable(err))
	assert.False(t, IsInvalidArgument(err))
	assert.Equal(t, "reflecting: UPSTREAM_UNAVAILABLE: could not load schedule (schedule): disk gone", err.Error())
}

func TestIsInvalidArgument(t *testing.T) {
	assert.True(t, IsInvalidArgument(&ReflectError{Code: ReflectErrInvalidArgument, Message: "user_id is required"}))
	assert.True(t, IsInvalidArgument(fmt.Errorf("logging: %w", &ValidationError{Field: "focus_rating", Message: "must be between 1 and 5"})))
	assert.False(t, IsInvalidArgument(errors.New("boom")))
	assert.False(t, IsInvalidArgument(nil))
}

func TestReflectResponse_Degraded(t *testing.T) {
	assert.False(t, (&ReflectResponse{}).Degraded())
	assert.True(t, (&ReflectResponse{DegradedSources: []string{SourceSessions}}).Degraded())
}
