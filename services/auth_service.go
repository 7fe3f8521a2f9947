package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/bako110/Sonaby/utils"
)

// RegisterInput carries a new staff account
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// TokenPair is the login / refresh result
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

// InterfaceAuthService owns staff authentication
type InterfaceAuthService interface {
	Register(input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	Profile(userID uint) (*models.User, error)
	ChangePassword(userID uint, current, next string) error
}

// AuthService implements authentication over the user store, the JWT
// signer and the refresh token store.
type AuthService struct {
	store      store.Store
	jwt        InterfaceJWTService
	tokens     InterfaceTokenStore
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(s store.Store, jwt InterfaceJWTService, tokens InterfaceTokenStore, cfg *config.Config) InterfaceAuthService {
	return &AuthService{
		store:      s,
		jwt:        jwt,
		tokens:     tokens,
		refreshTTL: time.Duration(cfg.RefreshTokenTTLDays) * 24 * time.Hour,
	}
}

// Register creates a staff account. The role defaults to AGENT_GESTION
// when omitted.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, code.Validation("email is required")
	}
	if len(input.Password) < 8 {
		return nil, code.Validation("password must be at least 8 characters")
	}
	role := input.Role
	if role == "" {
		role = models.RoleAgentGestion
	}
	if !models.IsValidRole(role) {
		return nil, code.Validation("unknown role %q", role)
	}

	taken, err := s.store.Users().EmailTaken(email, 0)
	if err != nil {
		return nil, code.Internal(err)
	}
	if taken {
		return nil, code.Conflict("email %s is already registered", email)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, code.Internal(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.Users().Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, code.Conflict("email %s is already registered", email)
		}
		return nil, code.Internal(err)
	}
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.Users().GetByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.Unauthenticated("invalid credentials")
		}
		return nil, code.Internal(err)
	}
	if !user.IsActive {
		return nil, code.Unauthenticated("account is disabled")
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, code.Unauthenticated("invalid credentials")
	}
	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented token must be the live
// one in the token store; rotation revokes it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, code.Unauthenticated("invalid refresh token")
	}
	ok, err := s.tokens.RefreshTokenMatches(ctx, userID, refreshToken)
	if err != nil {
		return nil, code.Internal(err)
	}
	if !ok {
		return nil, code.Unauthenticated("refresh token revoked")
	}
	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.Unauthenticated("account no longer exists")
		}
		return nil, code.Internal(err)
	}
	if !user.IsActive {
		return nil, code.Unauthenticated("account is disabled")
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the live refresh token
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.RevokeRefreshToken(ctx, userID); err != nil {
		return code.Internal(err)
	}
	return nil
}

// Profile returns the authenticated account
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("user %d not found", userID)
		}
		return nil, code.Internal(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before replacing it
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	if len(next) < 8 {
		return code.Validation("password must be at least 8 characters")
	}
	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("user %d not found", userID)
		}
		return code.Internal(err)
	}
	if !utils.CheckPassword(user.PasswordHash, current) {
		return code.Unauthenticated("current password is incorrect")
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return code.Internal(err)
	}
	user.PasswordHash = hash
	if err := s.store.Users().Update(user); err != nil {
		return code.Internal(err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, code.Internal(err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, code.Internal(err)
	}
	if err := s.tokens.SaveRefreshToken(ctx, user.ID, refresh, s.refreshTTL); err != nil {
		return nil, code.Internal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
