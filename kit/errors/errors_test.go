package errors_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: kerrors.EInternal},
		{name: "not found", err: kerrors.NotFound("op", "missing"), want: kerrors.ENotFound},
		{name: "wrapped invalid", err: fmt.Errorf("outer: %w", kerrors.Invalid("op", "bad")), want: kerrors.EInvalid},
		{name: "code from chain", err: &kerrors.Error{Err: kerrors.Unauthorized("op", "who")}, want: kerrors.EUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kerrors.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessageAndStatus(t *testing.T) {
	err := kerrors.Storage("contents.Insert", errors.New("disk full"))
	assert.Equal(t, "storage failure", kerrors.ErrorMessage(err))
	assert.Equal(t, "storage failure: disk full", err.Error())
	assert.Equal(t, "contents.Insert", kerrors.ErrorOp(err))
	assert.Equal(t, http.StatusInternalServerError, kerrors.StatusCode(err))

	assert.Equal(t, http.StatusNotFound, kerrors.StatusCode(kerrors.NotFound("op", "x")))
	assert.Equal(t, http.StatusBadRequest, kerrors.StatusCode(kerrors.Invalid("op", "x")))
	assert.Equal(t, http.StatusUnauthorized, kerrors.StatusCode(kerrors.Unauthorized("op", "x")))
	assert.Equal(t, http.StatusConflict, kerrors.StatusCode(kerrors.Conflict("op", "x")))
	assert.Equal(t, "An internal error has occurred.", kerrors.ErrorMessage(errors.New("raw")))
}

func TestMarshalJSONHidesCause(t *testing.T) {
	b, err := json.Marshal(kerrors.Storage("objects.Drop", errors.New("secret path /var/x")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"internal error","message":"storage failure","op":"objects.Drop"}`, string(b))
}
