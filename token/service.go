package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/employee-api/models"
)

// RefreshTokenType is the value of the "type" claim that marks a refresh
// token. Access tokens carry no "type" claim at all.
const RefreshTokenType = "refresh"

// Validation errors returned by Validate. Callers outside the token and
// middleware packages should collapse all of them to a single unauthorized
// outcome so the failure mode is not leaked to clients.
var (
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// Claims is the claim set carried by both token families. Roles is present
// only on access tokens; TokenType only on refresh tokens.
type Claims struct {
	Roles     []string `json:"roles,omitempty"`
	TokenType string   `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Service mints and validates HS256-signed tokens with a single shared
// secret. It holds no mutable state and is safe for concurrent use.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates a token Service. The secret signs and verifies both
// token families; access and refresh TTLs come from configuration.
func NewService(secret []byte, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("token service requires a signing secret")
	}
	return &Service{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess mints an access token for the given user. The roles claim is
// copied from the user's current role set in order, duplicates included.
func (s *Service) IssueAccess(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: append([]string(nil), user.Roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// IssueRefresh mints a refresh token for the given username. Refresh tokens
// carry the "type":"refresh" discriminator and never a roles claim.
func (s *Service) IssueRefresh(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: RefreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Validate parses and verifies a token string. The signature is checked
// before any claim is trusted; expiry is only reported for tokens whose
// signature verified.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// IsRefresh reports whether the claim set belongs to the refresh token
// family. Claim sets without the discriminator, including every access
// token, are non-refresh.
func (s *Service) IsRefresh(claims *Claims) bool {
	return claims != nil && claims.TokenType == RefreshTokenType
}

// classifyParseError maps golang-jwt parse errors onto the Service's
// sentinel errors. Signature failures win over everything else so that an
// unverified token is never reported as merely expired.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
