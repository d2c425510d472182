package security

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"help-queue/internal/status"
)

func TestPlainChecker(t *testing.T) {
	check := PlainChecker("53rocks")

	assert.True(t, check("53rocks"))
	assert.False(t, check("54rocks"))
	assert.False(t, check(""))
}

func TestBcryptChecker(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("53rocks"), bcrypt.MinCost)
	require.NoError(t, err)

	check := BcryptChecker(string(hash))

	assert.True(t, check("53rocks"))
	assert.False(t, check("54rocks"))
}

func TestGate_AuthenticateSuccess(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(PlainChecker("53rocks"), &out, strings.NewReader("53rocks\n"), -1)

	err := gate.Authenticate()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Enter password:")
}

func TestGate_AuthenticateWrongSecret(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(PlainChecker("53rocks"), &out, strings.NewReader("wrong\n"), -1)

	err := gate.Authenticate()

	assert.ErrorIs(t, err, status.ErrInvalidPassword)
}

func TestGate_AuthenticateTrailingNewlineStripped(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(PlainChecker("53rocks"), &out, strings.NewReader("53rocks\r\n"), -1)

	assert.NoError(t, gate.Authenticate())
}

func TestGate_AuthenticateInputClosed(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(PlainChecker("53rocks"), &out, strings.NewReader(""), -1)

	err := gate.Authenticate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}

func TestGate_AuthenticateLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(PlainChecker("53rocks"), &out, strings.NewReader("53rocks"), -1)

	assert.NoError(t, gate.Authenticate())
}
