package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

// TokenIssuer issues signed access tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username, role string) (token string, expiresAt time.Time, err error)
}

// AuthService handles authentication
type AuthService struct {
	userRepo identity.UserRepository
	issuer   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, issuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// Login authenticates a user by username and password and issues a token.
// Unknown user and wrong password return the same error to avoid leaking
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is deactivated")
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	token, expiresAt, err := s.issuer.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	// Login bookkeeping is best-effort; a failed save does not block login
	_ = s.userRepo.Save(ctx, user)

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// CurrentUser loads the authenticated user's profile
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
