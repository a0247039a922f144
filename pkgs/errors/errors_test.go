package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "USAGE_ERROR: bad flag", New(ErrUsage, "bad flag").Error())

	cause := stderrors.New("disk on fire")
	err := Wrap(ErrInputRead, "Failed to read 'a.fc'", cause)
	assert.Equal(t, "INPUT_READ_ERROR: Failed to read 'a.fc' (caused by: disk on fire)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNewInputError(t *testing.T) {
	missing := NewInputError("gone.fc", fmt.Errorf("open gone.fc: %w", fs.ErrNotExist))
	assert.Equal(t, ErrFileNotFound, missing.Type)
	assert.ErrorIs(t, missing, fs.ErrNotExist)

	denied := NewInputError("secret.fc", fs.ErrPermission)
	assert.Equal(t, ErrInputRead, denied.Type)

	path, ok := denied.GetContext("path")
	require.True(t, ok)
	assert.Equal(t, "secret.fc", path)
}

func TestNewUnknownKindError(t *testing.T) {
	withSuggestions := NewUnknownKindError("SHR_ASIGN", []string{"SHR_ASSIGN", "SHL_ASSIGN"})
	assert.Equal(t, "Did you mean SHR_ASSIGN, SHL_ASSIGN?", withSuggestions.Hint)

	none := NewUnknownKindError("BANANA", nil)
	assert.Equal(t, "Run 'frontc kinds' to list token kinds", none.Hint)
}

func TestIsErrorType(t *testing.T) {
	lexErr := NewLexError("x.fc", stderrors.New("1:1: invalid character: '$'"))
	wrapped := fmt.Errorf("check failed: %w", lexErr)

	assert.True(t, IsErrorType(lexErr, ErrLex))
	assert.True(t, IsErrorType(wrapped, ErrLex))
	assert.False(t, IsErrorType(wrapped, ErrUsage))
	assert.False(t, IsErrorType(stderrors.New("plain"), ErrLex))
	assert.False(t, IsErrorType(nil, ErrLex))
}

func TestWithHintAndContextChain(t *testing.T) {
	err := NewUsageError("unknown format 'yaml'", "use text, json or cbor").
		WithContext("format", "yaml")

	assert.Equal(t, "use text, json or cbor", err.Hint)
	v, ok := err.GetContext("format")
	assert.True(t, ok)
	assert.Equal(t, "yaml", v)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}
