package service

import (
	"errors"
	"strings"
	"sync"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// Identity is what the identity provider yields for a verified bearer token.
type Identity struct {
	Subject  string
	Email    string
	FullName string
}

// TokenVerifier is the verify(token) -> identity capability. Controllers get
// one injected at construction; nothing else reaches the provider SDK.
type TokenVerifier interface {
	Verify(idToken string) (Identity, error)
}

var ErrInvalidIDToken = errors.New("invalid id token")

type googleVerifier struct {
	clientIDs []string
}

func (g *googleVerifier) Verify(idToken string) (Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return Identity{}, ErrInvalidIDToken
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, g.clientIDs); err != nil {
		return Identity{}, ErrInvalidIDToken
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return Identity{}, ErrInvalidIDToken
	}

	return Identity{
		Subject:  claimSet.Sub,
		Email:    claimSet.Email,
		FullName: claimSet.Name,
	}, nil
}

var (
	verifierOnce    sync.Once
	defaultVerifier TokenVerifier
)

// InitVerifier sets up the process-wide verifier exactly once at startup.
// Calling it again is a no-op.
func InitVerifier(clientID string) {
	verifierOnce.Do(func() {
		defaultVerifier = &googleVerifier{clientIDs: []string{clientID}}
	})
}

// DefaultVerifier returns the verifier initialized by InitVerifier, or nil.
func DefaultVerifier() TokenVerifier {
	return defaultVerifier
}
