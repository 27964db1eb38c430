package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStringsKnownCodes(t *testing.T) {
	cases := []struct {
		err  Error
		text string
	}{
		{ErrSuccess, "success"},
		{ErrFailure, "generic failure"},
		{ErrOutOfMemory, "out of memory"},
		{ErrXRecordNotFound, "X RECORD extension not found"},
		{ErrSetWindowsHookEx, "SetWindowsHookEx failed"},
		{ErrAXAPIDisabled, "accessibility API access not granted"},
	}
	for _, c := range cases {
		assert.Equal(t, c.text, c.err.Error())
	}
}

func TestErrorStringUnknownCode(t *testing.T) {
	var unknown Error = 0xEF
	assert.Contains(t, unknown.Error(), "unknown error code")
}

func TestErrorIsSuccess(t *testing.T) {
	assert.True(t, ErrSuccess.IsSuccess())
	assert.False(t, ErrFailure.IsSuccess())
}
