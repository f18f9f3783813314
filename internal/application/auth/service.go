// Package auth implements registration and login on top of the tenant-scoped
// user repository. Accounts are per tenant, so the same email can exist on
// two storefronts without colliding.
package auth

import (
	"context"

	"gorm.io/gorm"

	infraauth "galerie/internal/infrastructure/auth"
	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/logger"
)

type Service struct {
	db     *gorm.DB
	jwt    *infraauth.JWTService
	hasher *infraauth.PasswordHasher
	log    logger.Interface
}

func NewService(db *gorm.DB, jwt *infraauth.JWTService, hasher *infraauth.PasswordHasher, log logger.Interface) *Service {
	return &Service{
		db:     db,
		jwt:    jwt,
		hasher: hasher,
		log:    log.With("component", "auth.service"),
	}
}

func (s *Service) users(tenantID uint) *repository.UserRepository {
	return repository.NewUserRepository(repository.NewTenantDB(s.db, tenantID))
}

// Register creates a user under the given tenant and returns an access token.
func (s *Service) Register(ctx context.Context, tenantID uint, email, password, name string) (*models.UserModel, string, error) {
	users := s.users(tenantID)

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("email already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to hash password")
	}

	user := &models.UserModel{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user.ID, tenantID, user.IsAdmin)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue token")
	}

	s.log.Infow("user registered", "user_id", user.ID, "tenant_id", tenantID)
	return user, token, nil
}

// Login verifies credentials within the tenant and returns an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, tenantID uint, email, password string) (*models.UserModel, string, error) {
	user, err := s.users(tenantID).FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, password) {
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.jwt.Generate(user.ID, tenantID, user.IsAdmin)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue token")
	}
	return user, token, nil
}
