package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/angelmondragon/crmgraphql-backend/api/validators"
	"github.com/angelmondragon/crmgraphql-backend/internal/purchases"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
)

// ItemsProductInput mirrors the ItemsProductInput SDL type. Name and price
// are accepted for compatibility; the stored snapshot comes from the product.
type ItemsProductInput struct {
	ID       graphql.ID
	Quantity int32
	Name     *string
	Price    *float64
}

// PurchaseInput mirrors the PurchaseInput SDL type.
type PurchaseInput struct {
	Items  *[]ItemsProductInput
	Total  float64
	Client graphql.ID
	Status *string
}

// ItemsGroupResolver exposes one purchase line.
type ItemsGroupResolver struct {
	item models.PurchaseItem
}

func (r *ItemsGroupResolver) ID() graphql.ID { return graphql.ID(r.item.ProductID.String()) }
func (r *ItemsGroupResolver) Quantity() int32 { return int32(r.item.Quantity) }
func (r *ItemsGroupResolver) Name() string { return r.item.Name }
func (r *ItemsGroupResolver) Price() float64 { return r.item.Price }

// PurchaseResolver exposes a purchase order.
type PurchaseResolver struct {
	purchase models.Purchase
}

func (r *PurchaseResolver) ID() graphql.ID { return graphql.ID(r.purchase.ID.String()) }

func (r *PurchaseResolver) Items() []*ItemsGroupResolver {
	items := make([]*ItemsGroupResolver, 0, len(r.purchase.Items))
	for _, item := range r.purchase.Items {
		items = append(items, &ItemsGroupResolver{item: item})
	}
	return items
}

func (r *PurchaseResolver) Total() float64 { return r.purchase.Total }

func (r *PurchaseResolver) Client() *ClientResolver {
	if r.purchase.Client == nil {
		return nil
	}
	return &ClientResolver{client: *r.purchase.Client}
}

func (r *PurchaseResolver) Seller() graphql.ID { return graphql.ID(r.purchase.SellerID.String()) }
func (r *PurchaseResolver) Created() string { return formatTime(r.purchase.CreatedAt) }
func (r *PurchaseResolver) Status() string { return r.purchase.Status.String() }

func purchaseResolvers(list []models.Purchase) []*PurchaseResolver {
	resolvers := make([]*PurchaseResolver, 0, len(list))
	for _, purchase := range list {
		resolvers = append(resolvers, &PurchaseResolver{purchase: purchase})
	}
	return resolvers
}

func toPurchaseInput(input PurchaseInput) purchases.PurchaseInput {
	converted := purchases.PurchaseInput{
		Total:  input.Total,
		Client: string(input.Client),
		Status: input.Status,
	}
	if input.Items != nil {
		converted.Items = make([]purchases.PurchaseItemInput, 0, len(*input.Items))
		for _, item := range *input.Items {
			line := purchases.PurchaseItemInput{
				ID:       string(item.ID),
				Quantity: item.Quantity,
			}
			if item.Name != nil {
				line.Name = *item.Name
			}
			if item.Price != nil {
				line.Price = *item.Price
			}
			converted.Items = append(converted.Items, line)
		}
	}
	return converted
}

// GetPurchases lists every purchase regardless of seller.
func (r *Resolver) GetPurchases(ctx context.Context) ([]*PurchaseResolver, error) {
	list, err := r.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	return purchaseResolvers(list), nil
}

// GetSellerPurchases lists the caller's purchases with client details.
func (r *Resolver) GetSellerPurchases(ctx context.Context) ([]*PurchaseResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.purchases.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return purchaseResolvers(list), nil
}

// GetPurchase loads one of the caller's purchases.
func (r *Resolver) GetPurchase(ctx context.Context, args struct{ ID graphql.ID }) (*PurchaseResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	purchase, err := r.purchases.Get(ctx, string(args.ID), sellerID)
	if err != nil {
		return nil, err
	}
	return &PurchaseResolver{purchase: *purchase}, nil
}

// GetPurchasesByStatus filters the caller's purchases by exact status.
func (r *Resolver) GetPurchasesByStatus(ctx context.Context, args struct{ Status string }) ([]*PurchaseResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.purchases.ListByStatus(ctx, sellerID, args.Status)
	if err != nil {
		return nil, err
	}
	return purchaseResolvers(list), nil
}

// NewPurchase places an order for one of the caller's clients.
func (r *Resolver) NewPurchase(ctx context.Context, args struct{ Input PurchaseInput }) (*PurchaseResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	input := toPurchaseInput(args.Input)
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	purchase, err := r.purchases.Create(ctx, input, sellerID)
	if err != nil {
		return nil, err
	}
	return &PurchaseResolver{purchase: *purchase}, nil
}

// UpdatePurchase overwrites a purchase's fields, re-reserving stock when the
// input carries items.
func (r *Resolver) UpdatePurchase(ctx context.Context, args struct {
	ID    graphql.ID
	Input PurchaseInput
}) (*PurchaseResolver, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	input := toPurchaseInput(args.Input)
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	purchase, err := r.purchases.Update(ctx, string(args.ID), input, sellerID)
	if err != nil {
		return nil, err
	}
	return &PurchaseResolver{purchase: *purchase}, nil
}

// DeletePurchase removes one of the caller's purchases and confirms. Stock is
// not restored.
func (r *Resolver) DeletePurchase(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	sellerID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if err := r.purchases.Delete(ctx, string(args.ID), sellerID); err != nil {
		return "", err
	}
	return "Purchase deleted successfully.", nil
}
