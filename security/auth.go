package security

import (
	"bufio"
	"crypto/subtle"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"help-queue/internal/status"
)

// Checker decides whether a presented secret grants privileged access.
// Keeping it a function lets the comparison strategy change without
// touching any operation logic.
type Checker func(secret string) bool

// PlainChecker compares against a fixed shared secret in constant time.
func PlainChecker(secret string) Checker {
	want := []byte(secret)
	return func(got string) bool {
		return subtle.ConstantTimeCompare(want, []byte(got)) == 1
	}
}

// BcryptChecker verifies against a bcrypt hash of the shared secret.
func BcryptChecker(hash string) Checker {
	return func(got string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(got)) == nil
	}
}

// Gate prompts for the shared secret before privileged commands run.
type Gate struct {
	check Checker
	out   io.Writer
	in    *bufio.Reader
	fd    int
}

// NewGate builds a gate reading secrets from in. fd is the descriptor used
// for no-echo reads when it refers to a terminal; pass -1 to always read
// lines from in instead.
func NewGate(check Checker, out io.Writer, in io.Reader, fd int) *Gate {
	return &Gate{check: check, out: out, in: bufio.NewReader(in), fd: fd}
}

// Authenticate prompts for the shared secret and verifies it. It must run
// before any part of a privileged operation takes effect; its error fails
// the whole command.
func (g *Gate) Authenticate() error {
	fmt.Fprint(g.out, "Enter password:")
	secret, err := g.readSecret()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if !g.check(secret) {
		return status.ErrInvalidPassword
	}
	return nil
}

func (g *Gate) readSecret() (string, error) {
	if g.fd >= 0 && term.IsTerminal(g.fd) {
		// Echo is off, so the operator's newline never reaches the screen.
		defer fmt.Fprintln(g.out)
		b, err := term.ReadPassword(g.fd)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
