// Package graph contains the GraphQL schema and its resolvers.
package graph

import (
	"context"
	"fmt"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/angelmondragon/crmgraphql-backend/api/middleware"
	"github.com/angelmondragon/crmgraphql-backend/internal/auth"
	"github.com/angelmondragon/crmgraphql-backend/internal/clients"
	"github.com/angelmondragon/crmgraphql-backend/internal/products"
	"github.com/angelmondragon/crmgraphql-backend/internal/purchases"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
)

type userDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Resolver is the root resolver for all GraphQL operations.
type Resolver struct {
	auth      auth.Service
	users     userDirectory
	products  products.Service
	clients   clients.Service
	purchases purchases.Service
}

// ResolverParams bundles the services the resolvers delegate to.
type ResolverParams struct {
	Auth      auth.Service
	Users     userDirectory
	Products  products.Service
	Clients   clients.Service
	Purchases purchases.Service
}

// NewResolver creates the root resolver with the given services.
func NewResolver(params ResolverParams) (*Resolver, error) {
	if params.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user directory is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product service is required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client service is required")
	}
	if params.Purchases == nil {
		return nil, fmt.Errorf("purchase service is required")
	}
	return &Resolver{
		auth:      params.Auth,
		users:     params.Users,
		products:  params.Products,
		clients:   params.Clients,
		purchases: params.Purchases,
	}, nil
}

// MustParseSchema wires the SDL to the resolver, panicking on a schema bug.
func MustParseSchema(resolver *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, resolver, graphql.UseStringDescriptions())
}

// callerID extracts the authenticated seller from the request context.
func callerID(ctx context.Context) (uuid.UUID, error) {
	caller := middleware.CallerFromContext(ctx)
	if caller == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return caller.Payload.UserID, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
