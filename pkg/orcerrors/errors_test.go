package orcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesTypeAndStack(t *testing.T) {
	err := New(ErrorTypeConfig, "buffer size must be positive")

	assert.Equal(t, ErrorTypeConfig, err.Type)
	assert.Equal(t, "config: buffer size must be positive", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(ErrorTypeUnsupportedKind, "unsupported type: %s", "UNION")
	assert.Equal(t, "unsupported_kind: unsupported type: UNION", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrorTypeData, "column flush failed")

	require.NotNil(t, err)
	assert.Equal(t, "data: column flush failed: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestWrapKeepsExistingStack(t *testing.T) {
	inner := New(ErrorTypeMalformedSchema, "child ordinal out of range")
	outer := Wrap(inner, ErrorTypeMalformedSchema, "schema walk failed")

	assert.Equal(t, inner.Stack[0], outer.Stack[0])
	assert.True(t, errors.Is(outer, inner))
}

func TestWithDetailChains(t *testing.T) {
	err := New(ErrorTypeDialect, "kind not supported by dialect").
		WithDetail("kind", "DATE").
		WithDetail("dialect", "DWRF")

	assert.Equal(t, "DATE", err.Details["kind"])
	assert.Equal(t, "DWRF", err.Details["dialect"])
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeDialect, "DWRF does not support DATE type")

	assert.True(t, IsType(err, ErrorTypeDialect))
	assert.False(t, IsType(err, ErrorTypeUnsupportedKind))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeDialect))
	assert.False(t, IsType(nil, ErrorTypeDialect))
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := New(ErrorTypeUnsupportedKind, "unsupported type: UNION")
	wrapped := fmt.Errorf("building writer: %w", inner)

	assert.True(t, IsType(wrapped, ErrorTypeUnsupportedKind))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(New(ErrorTypeConfig, "bad option")))
	assert.False(t, IsRetryable(New(ErrorTypeData, "bad value")))
	assert.False(t, IsRetryable(errors.New("plain")))
}
