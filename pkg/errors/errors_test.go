package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(CodeDataFetchFailure, "unable to load data", base)

	require.EqualError(t, err, "unable to load data: boom")
	require.True(t, IsCode(err, CodeDataFetchFailure))
	require.False(t, IsCode(err, CodeInvalidBounds))
	require.ErrorIs(t, err, base)

	wrapped := fmt.Errorf("refresh: %w", err)
	require.Equal(t, CodeDataFetchFailure, CodeOf(wrapped))
	require.Equal(t, "", CodeOf(base))
}

func TestWrapNil(t *testing.T) {
	err := Wrap(CodeInvalidRequest, "bad input", nil)
	require.EqualError(t, err, "bad input")
	require.Nil(t, errors.Unwrap(err))
}
