package errors_test

import (
	stderrors "errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"massnet.org/shasum/errors"
)

func TestErrorString(t *testing.T) {
	err := errors.New(errors.ErrInvalidState, "block count 2 does not match staged 1")
	assert.Equal(t, "Invalid engine state (1102): block count 2 does not match staged 1", err.Error())

	unknown := &errors.Error{Code: 9999}
	assert.Equal(t, "Unknown error (9999)", unknown.Error())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code uint32
	}{
		{"plain", stderrors.New("boom"), errors.ErrUnknown},
		{"nil", nil, errors.ErrUnknown},
		{"coded", errors.New(errors.ErrResourceExhausted, "grow"), errors.ErrResourceExhausted},
		{"wrapped coded", pkgerrors.Wrap(errors.New(errors.ErrReadFile, "read"), "outer"), errors.ErrReadFile},
		{"coded wrapping coded", errors.Wrap(errors.ErrStore, errors.New(errors.ErrInvalidState, "x"), "put"), errors.ErrStore},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.code, errors.CodeOf(test.err))
		})
	}
}

func TestIs(t *testing.T) {
	inner := errors.New(errors.ErrResourceExhausted, "limit reached")
	outer := errors.Wrap(errors.ErrReadFile, inner, "staging input")

	assert.True(t, errors.IsResourceExhausted(inner))
	assert.True(t, errors.IsResourceExhausted(outer))
	assert.True(t, errors.Is(outer, errors.ErrReadFile))
	assert.False(t, errors.IsInvalidState(outer))
	assert.False(t, errors.IsResourceExhausted(stderrors.New("limit reached")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(errors.ErrStore, nil, "nothing"))
	assert.Nil(t, errors.Wrapf(errors.ErrStore, nil, "nothing %d", 1))
}
