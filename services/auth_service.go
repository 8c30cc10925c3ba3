package services

import (
	"context"

	"github.com/upb/employee-api/middleware"
	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
	"github.com/upb/employee-api/token"
	"go.uber.org/zap"
)

// TokenTypeBearer is the token-type label returned with every token pair.
const TokenTypeBearer = "Bearer"

// TokenIssuer is the slice of the token service the auth orchestrator
// consumes.
type TokenIssuer interface {
	IssueAccess(user *models.User) (string, error)
	IssueRefresh(username string) (string, error)
	Validate(tokenString string) (*token.Claims, error)
	IsRefresh(claims *token.Claims) bool
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// Identity is the caller's view of itself, read from the access token.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AuthService orchestrates login, refresh, registration and identity
// lookups over the credential store, the password hasher and the token
// service. It holds no per-request state.
type AuthService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger

	// dummyHash is compared on the unknown-user branch of Login so both
	// branches pay for a hash comparison.
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) (*AuthService, error) {
	dummyHash, err := hasher.Hash("invalid-password-placeholder")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// Login verifies the credentials and mints a fresh token pair. Unknown
// usernames and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, WrapInternal("credential lookup failed", err)
	}
	if !found {
		// Burn a comparison so the missing-user branch is not faster.
		s.hasher.Matches(password, s.dummyHash)
		s.logger.Warn("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Matches(password, user.PasswordHash) {
		s.logger.Warn("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.String("username", username))
	return pair, nil
}

// Refresh validates a refresh token and mints a new pair bound to the
// principal's current role set. The presented token stays valid until its
// own expiry; there is no server-side state to revoke it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken)
	if err != nil {
		s.logger.Warn("refresh rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}
	if !s.tokens.IsRefresh(claims) {
		s.logger.Warn("refresh rejected: wrong token kind", zap.String("sub", claims.Subject))
		return nil, ErrWrongTokenKind
	}

	// Roles may have changed since the original login; re-read them.
	user, found, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, WrapInternal("credential lookup failed", err)
	}
	if !found {
		s.logger.Warn("refresh rejected: unknown subject", zap.String("sub", claims.Subject))
		return nil, ErrUnauthorized
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("tokens refreshed", zap.String("username", user.Username))
	return pair, nil
}

// Register creates a new credential with the default role. No tokens are
// issued; the caller logs in separately.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, WrapInternal("credential lookup failed", err)
	}
	if taken {
		s.logger.Warn("registration rejected: username taken", zap.String("username", username))
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, WrapInternal("password hashing failed", err)
	}

	user := models.NewUser(username, hash)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, WrapInternal("credential save failed", err)
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// WhoAmI returns the caller's identity straight from the security context.
// It reflects the token's contents, not the store's live state.
func (s *AuthService) WhoAmI(sctx *middleware.SecurityContext) (*Identity, error) {
	if sctx == nil || !sctx.Authenticated {
		return nil, ErrUnauthorized
	}
	return &Identity{
		Username: sctx.Username,
		Roles:    sctx.Roles,
	}, nil
}

func (s *AuthService) mintPair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, WrapInternal("access token minting failed", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, WrapInternal("refresh token minting failed", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
	}, nil
}
