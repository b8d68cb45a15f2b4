package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"
	"gorm.io/gorm"

	"github.com/angelmondragon/crmgraphql-backend/api/validators"
	"github.com/angelmondragon/crmgraphql-backend/internal/auth"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
)

// UserInput mirrors the UserInput SDL type.
type UserInput struct {
	Name     string
	LastName string
	Email    string
	Password string
}

// AuthInput mirrors the AuthInput SDL type.
type AuthInput struct {
	Email    string
	Password string
}

// UserResolver exposes a seller account.
type UserResolver struct {
	user models.User
}

func (r *UserResolver) ID() graphql.ID { return graphql.ID(r.user.ID.String()) }
func (r *UserResolver) Name() string { return r.user.Name }
func (r *UserResolver) LastName() string { return r.user.LastName }
func (r *UserResolver) Email() string { return r.user.Email }
func (r *UserResolver) Created() string { return formatTime(r.user.CreatedAt) }

// TokenResolver wraps a minted credential.
type TokenResolver struct {
	token string
}

func (r *TokenResolver) Token() string { return r.token }

// GetUser returns the authenticated seller's account.
func (r *Resolver) GetUser(ctx context.Context) (*UserResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	user, err := r.users.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User does not exist.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return &UserResolver{user: *user}, nil
}

// NewUser registers a seller account.
func (r *Resolver) NewUser(ctx context.Context, args struct{ Input UserInput }) (*UserResolver, error) {
	input := auth.RegisterInput{
		Name:     args.Input.Name,
		LastName: args.Input.LastName,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	}
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	user, err := r.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return &UserResolver{user: *user}, nil
}

// UserAuth exchanges credentials for a signed token.
func (r *Resolver) UserAuth(ctx context.Context, args struct{ Input AuthInput }) (*TokenResolver, error) {
	input := auth.AuthInput{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	}
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	token, err := r.auth.Authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	return &TokenResolver{token: token}, nil
}
