package identity

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication and user management
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Failed password check", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()),
	)

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(_ context.Context, req RefreshRequest) (*RefreshResponse, error) {
	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	return &RefreshResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// CreateUser creates a user within the actor's tenant. Only admins may do this.
func (s *AuthService) CreateUser(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	if err := actor.Require(actor.Role == identity.RoleAdmin); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, actor.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(actor.TenantID, req.Email, req.Name, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	user.SetCreatedBy(actor.UserID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangeRole changes another user's role. Only admins may do this.
func (s *AuthService) ChangeRole(ctx context.Context, actor identity.Actor, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	if err := actor.Require(actor.Role == identity.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.TenantID != actor.TenantID {
		return nil, shared.ErrNotFound
	}

	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// DeactivateUser disables a user's account. Only admins may do this.
func (s *AuthService) DeactivateUser(ctx context.Context, actor identity.Actor, userID uuid.UUID) error {
	if err := actor.Require(actor.Role == identity.RoleAdmin); err != nil {
		return err
	}
	if userID == actor.UserID {
		return shared.NewDomainError("INVALID_INPUT", "Cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.TenantID != actor.TenantID {
		return shared.ErrNotFound
	}

	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}

// ListUsers returns all users in the actor's tenant
func (s *AuthService) ListUsers(ctx context.Context, actor identity.Actor) ([]UserResponse, error) {
	users, err := s.userRepo.FindAllForTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}
