package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/angelmondragon/crmgraphql-backend/api/validators"
	"github.com/angelmondragon/crmgraphql-backend/internal/products"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
)

// ProductInput mirrors the ProductInput SDL type.
type ProductInput struct {
	Name  string
	Stock int32
	Price float64
}

// ProductResolver exposes an inventory listing.
type ProductResolver struct {
	product models.Product
}

func (r *ProductResolver) ID() graphql.ID { return graphql.ID(r.product.ID.String()) }
func (r *ProductResolver) Name() string { return r.product.Name }
func (r *ProductResolver) Stock() int32 { return int32(r.product.Stock) }
func (r *ProductResolver) Price() float64 { return r.product.Price }
func (r *ProductResolver) Created() string { return formatTime(r.product.CreatedAt) }

func productResolvers(list []models.Product) []*ProductResolver {
	resolvers := make([]*ProductResolver, 0, len(list))
	for _, product := range list {
		resolvers = append(resolvers, &ProductResolver{product: product})
	}
	return resolvers
}

// GetProducts lists the full catalog.
func (r *Resolver) GetProducts(ctx context.Context) ([]*ProductResolver, error) {
	list, err := r.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return productResolvers(list), nil
}

// GetProduct loads a single product.
func (r *Resolver) GetProduct(ctx context.Context, args struct{ ID graphql.ID }) (*ProductResolver, error) {
	product, err := r.products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{product: *product}, nil
}

// LookProduct searches the catalog by name substring.
func (r *Resolver) LookProduct(ctx context.Context, args struct{ Text string }) ([]*ProductResolver, error) {
	list, err := r.products.Search(ctx, args.Text)
	if err != nil {
		return nil, err
	}
	return productResolvers(list), nil
}

// NewProduct creates a product.
func (r *Resolver) NewProduct(ctx context.Context, args struct{ Input ProductInput }) (*ProductResolver, error) {
	input := products.ProductInput{
		Name:  args.Input.Name,
		Stock: args.Input.Stock,
		Price: args.Input.Price,
	}
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	product, err := r.products.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{product: *product}, nil
}

// UpdateProduct overwrites a product's fields.
func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ID    graphql.ID
	Input ProductInput
}) (*ProductResolver, error) {
	input := products.ProductInput{
		Name:  args.Input.Name,
		Stock: args.Input.Stock,
		Price: args.Input.Price,
	}
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	product, err := r.products.Update(ctx, string(args.ID), input)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{product: *product}, nil
}

// DeleteProduct removes a product and confirms.
func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	if err := r.products.Delete(ctx, string(args.ID)); err != nil {
		return "", err
	}
	return "Product removed successfully.", nil
}
