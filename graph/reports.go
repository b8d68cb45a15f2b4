package graph

import (
	"context"

	"github.com/angelmondragon/crmgraphql-backend/internal/purchases"
)

// TopClientsResolver exposes one group of the top-clients report.
type TopClientsResolver struct {
	row purchases.ClientReportRow
}

func (r *TopClientsResolver) Total() float64 { return r.row.Total }

func (r *TopClientsResolver) Client() []*ClientResolver {
	return clientResolvers(r.row.Clients)
}

// TopSellersResolver exposes one group of the top-sellers report.
type TopSellersResolver struct {
	row purchases.SellerReportRow
}

func (r *TopSellersResolver) Total() float64 { return r.row.Total }

func (r *TopSellersResolver) Seller() []*UserResolver {
	resolvers := make([]*UserResolver, 0, len(r.row.Sellers))
	for _, seller := range r.row.Sellers {
		resolvers = append(resolvers, &UserResolver{user: seller})
	}
	return resolvers
}

// TopClients reports completed-purchase totals grouped by client.
func (r *Resolver) TopClients(ctx context.Context) ([]*TopClientsResolver, error) {
	rows, err := r.purchases.TopClients(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*TopClientsResolver, 0, len(rows))
	for _, row := range rows {
		resolvers = append(resolvers, &TopClientsResolver{row: row})
	}
	return resolvers, nil
}

// TopSellers reports completed-purchase totals grouped by seller.
func (r *Resolver) TopSellers(ctx context.Context) ([]*TopSellersResolver, error) {
	rows, err := r.purchases.TopSellers(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*TopSellersResolver, 0, len(rows))
	for _, row := range rows {
		resolvers = append(resolvers, &TopSellersResolver{row: row})
	}
	return resolvers, nil
}
