package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/angelmondragon/crmgraphql-backend/api/validators"
	"github.com/angelmondragon/crmgraphql-backend/internal/clients"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
)

// ClientInput mirrors the ClientInput SDL type.
type ClientInput struct {
	Name     string
	LastName string
	Email    string
	Phone    *string
	Company  string
}

// ClientResolver exposes a client record.
type ClientResolver struct {
	client models.Client
}

func (r *ClientResolver) ID() graphql.ID { return graphql.ID(r.client.ID.String()) }
func (r *ClientResolver) Name() string { return r.client.Name }
func (r *ClientResolver) LastName() string { return r.client.LastName }
func (r *ClientResolver) Email() string { return r.client.Email }
func (r *ClientResolver) Phone() *string { return r.client.Phone }
func (r *ClientResolver) Company() string { return r.client.Company }
func (r *ClientResolver) Created() string { return formatTime(r.client.CreatedAt) }
func (r *ClientResolver) Seller() graphql.ID { return graphql.ID(r.client.SellerID.String()) }

func clientResolvers(list []models.Client) []*ClientResolver {
	resolvers := make([]*ClientResolver, 0, len(list))
	for _, client := range list {
		resolvers = append(resolvers, &ClientResolver{client: client})
	}
	return resolvers
}

func toClientInput(input ClientInput) clients.ClientInput {
	return clients.ClientInput{
		Name:     input.Name,
		LastName: input.LastName,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
	}
}

// GetClients lists every client regardless of seller.
func (r *Resolver) GetClients(ctx context.Context) ([]*ClientResolver, error) {
	list, err := r.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return clientResolvers(list), nil
}

// GetSellerClients lists the caller's clients.
func (r *Resolver) GetSellerClients(ctx context.Context) ([]*ClientResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.clients.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return clientResolvers(list), nil
}

// GetClient loads one of the caller's clients.
func (r *Resolver) GetClient(ctx context.Context, args struct{ ID graphql.ID }) (*ClientResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	client, err := r.clients.Get(ctx, string(args.ID), sellerID)
	if err != nil {
		return nil, err
	}
	return &ClientResolver{client: *client}, nil
}

// NewClient registers a client owned by the caller.
func (r *Resolver) NewClient(ctx context.Context, args struct{ Input ClientInput }) (*ClientResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	input := toClientInput(args.Input)
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	client, err := r.clients.Create(ctx, input, sellerID)
	if err != nil {
		return nil, err
	}
	return &ClientResolver{client: *client}, nil
}

// UpdateClient overwrites a client's mutable fields.
func (r *Resolver) UpdateClient(ctx context.Context, args struct {
	ID    graphql.ID
	Input ClientInput
}) (*ClientResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	input := toClientInput(args.Input)
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	client, err := r.clients.Update(ctx, string(args.ID), input, sellerID)
	if err != nil {
		return nil, err
	}
	return &ClientResolver{client: *client}, nil
}

// DeleteClient removes one of the caller's clients and confirms.
func (r *Resolver) DeleteClient(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if err := r.clients.Delete(ctx, string(args.ID), sellerID); err != nil {
		return "", err
	}
	return "Client deleted successfully.", nil
}
