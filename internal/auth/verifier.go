package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrMissingToken    = fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrInvalidPayload  = fmt.Errorf("%w: invalid token payload", ErrUnauthenticated)
)

// Identity is the caller identity carried by a verified access token.
type Identity struct {
	Subject string
	Email   string
}

// Claims is the payload of an access token issued by the auth provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens signed with a single shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify extracts the token from an Authorization header value and returns
// the identity it carries. Audience is not checked.
func (v *Verifier) Verify(header string) (Identity, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return Identity{}, ErrMissingToken
	}
	raw := header[len(bearerPrefix):]

	var claims Claims
	if _, err := v.parser.ParseWithClaims(raw, &claims, v.keyFunc); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return Identity{}, ErrInvalidPayload
	}

	return Identity{Subject: claims.Subject, Email: claims.Email}, nil
}

func (v *Verifier) keyFunc(*jwt.Token) (interface{}, error) {
	return v.secret, nil
}
