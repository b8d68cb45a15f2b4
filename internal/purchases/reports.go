package purchases

import (
	"context"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
)

const (
	topClientsLimit = 10
	topSellersLimit = 3
)

// ClientReportRow is one group of the top-clients report. Clients carries the
// joined client record as a single-element list, mirroring the report shape
// exposed over the API.
type ClientReportRow struct {
	Total   float64
	Clients []models.Client
}

// SellerReportRow is the seller-keyed counterpart.
type SellerReportRow struct {
	Total   float64
	Sellers []models.User
}

// TopClients groups completed purchases by client and sums their totals. The
// group set is truncated to ten rows before the descending sort, so the
// result is the ordered truncation rather than the global top ten.
func (s *service) TopClients(ctx context.Context) ([]ClientReportRow, error) {
	groups, err := s.repo.AggregateCompletedByClient(ctx, topClientsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate top clients")
	}
	if len(groups) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.GroupID)
	}
	clients, err := s.clients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join client details")
	}
	byID := make(map[uuid.UUID]models.Client, len(clients))
	for _, client := range clients {
		byID[client.ID] = client
	}

	rows := make([]ClientReportRow, 0, len(groups))
	for _, group := range groups {
		row := ClientReportRow{Total: group.Total}
		if client, ok := byID[group.GroupID]; ok {
			row.Clients = []models.Client{client}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TopSellers is the seller-keyed report, truncated to three groups before the
// descending sort.
func (s *service) TopSellers(ctx context.Context) ([]SellerReportRow, error) {
	groups, err := s.repo.AggregateCompletedBySeller(ctx, topSellersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate top sellers")
	}
	if len(groups) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.GroupID)
	}
	sellers, err := s.sellers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join seller details")
	}
	byID := make(map[uuid.UUID]models.User, len(sellers))
	for _, seller := range sellers {
		byID[seller.ID] = seller
	}

	rows := make([]SellerReportRow, 0, len(groups))
	for _, group := range groups {
		row := SellerReportRow{Total: group.Total}
		if seller, ok := byID[group.GroupID]; ok {
			row.Sellers = []models.User{seller}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
