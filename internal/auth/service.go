package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/angelmondragon/crmgraphql-backend/pkg/auth"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/angelmondragon/crmgraphql-backend/pkg/security"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the user resolvers.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, input AuthInput) (string, error)
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type service struct {
	users       userRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo    userRepository
	JWTConfig   config.JWTConfig
	PasswordCfg config.PasswordConfig
	Now         func() time.Time
}

// NewService constructs a registration/login service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.UserRepo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordCfg,
		now:         now,
	}, nil
}

// Register creates a seller account, refusing duplicate emails.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up user")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "User already registered.")
	}

	passwordHash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: passwordHash,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		// A concurrent registration can slip past the lookup; the unique
		// index is the arbiter.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "User already registered.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return created, nil
}

// Authenticate verifies the credentials and mints a 24-hour token.
func (s *service) Authenticate(ctx context.Context, input AuthInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "User does not exist.")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Incorrect password.")
	}

	token, err := pkgAuth.MintToken(s.jwtCfg, s.now(), pkgAuth.TokenPayload{
		UserID:   user.ID,
		Name:     user.Name,
		LastName: user.LastName,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return token, nil
}
