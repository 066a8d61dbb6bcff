package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackendError_Error(t *testing.T) {
	e := &BackendError{StatusCode: 400, Detail: "User already exists"}
	require.Equal(t, "backend returned status 400: User already exists", e.Error())

	e = &BackendError{StatusCode: 500}
	require.Equal(t, "backend returned status 500", e.Error())
}

func TestBackendError_Message(t *testing.T) {
	e := &BackendError{StatusCode: 400, Detail: "User already exists"}
	require.Equal(t, "User already exists", e.Message("Signup failed"))

	e = &BackendError{StatusCode: 502}
	require.Equal(t, "Signup failed", e.Message("Signup failed"))
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("signup: %w", ErrValidation)
	require.True(t, errors.Is(wrapped, ErrValidation))
	require.False(t, errors.Is(wrapped, ErrAuth))
}
