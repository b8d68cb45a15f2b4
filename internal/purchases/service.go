package purchases

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	"github.com/angelmondragon/crmgraphql-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	notFoundMessage       = "Purchase does not exist."
	clientNotFoundMessage = "Client does not exist."
)

// PurchaseItemInput is one requested line of a purchase. Name and price are
// accepted but ignored; the stored snapshot always comes from the product row.
type PurchaseItemInput struct {
	ID       string  `json:"id" validate:"required"`
	Quantity int32   `json:"quantity" validate:"required,min=1"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// PurchaseInput carries the fields accepted for create and update.
type PurchaseInput struct {
	Items  []PurchaseItemInput `json:"items" validate:"dive"`
	Total  float64             `json:"total" validate:"min=0"`
	Client string              `json:"client" validate:"required"`
	Status *string             `json:"status,omitempty"`
}

// Service implements the purchase operations behind the resolvers. Every
// ownership-checked operation takes the caller's seller id explicitly.
type Service interface {
	List(ctx context.Context) ([]models.Purchase, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error)
	ListByStatus(ctx context.Context, sellerID uuid.UUID, status string) ([]models.Purchase, error)
	Get(ctx context.Context, id string, sellerID uuid.UUID) (*models.Purchase, error)
	Create(ctx context.Context, input PurchaseInput, sellerID uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, id string, input PurchaseInput, sellerID uuid.UUID) (*models.Purchase, error)
	Delete(ctx context.Context, id string, sellerID uuid.UUID) error
	TopClients(ctx context.Context) ([]ClientReportRow, error)
	TopSellers(ctx context.Context) ([]SellerReportRow, error)
}

type repository interface {
	Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	List(ctx context.Context) ([]models.Purchase, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error)
	ListBySellerAndStatus(ctx context.Context, sellerID uuid.UUID, status string) ([]models.Purchase, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, items []models.PurchaseItem) (*models.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AggregateCompletedByClient(ctx context.Context, limit int) ([]AggregateRow, error)
	AggregateCompletedBySeller(ctx context.Context, limit int) ([]AggregateRow, error)
}

type productCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

type clientDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Client, error)
}

type sellerDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type service struct {
	repo     repository
	products productCatalog
	clients  clientDirectory
	sellers  sellerDirectory
}

// ServiceParams bundles the collaborators the purchase service needs.
type ServiceParams struct {
	Repo     repository
	Products productCatalog
	Clients  clientDirectory
	Sellers  sellerDirectory
}

// NewService constructs the purchase service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("purchase repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product catalog is required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client directory is required")
	}
	if params.Sellers == nil {
		return nil, fmt.Errorf("seller directory is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		clients:  params.Clients,
		sellers:  params.Sellers,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Purchase, error) {
	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return purchases, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error) {
	purchases, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller purchases")
	}
	return purchases, nil
}

func (s *service) ListByStatus(ctx context.Context, sellerID uuid.UUID, status string) ([]models.Purchase, error) {
	parsed, err := enums.ParsePurchaseStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid purchase status.")
	}
	purchases, err := s.repo.ListBySellerAndStatus(ctx, sellerID, parsed.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases by status")
	}
	return purchases, nil
}

func (s *service) Get(ctx context.Context, id string, sellerID uuid.UUID) (*models.Purchase, error) {
	purchase, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to see this purchase.")
	}
	return purchase, nil
}

func (s *service) Create(ctx context.Context, input PurchaseInput, sellerID uuid.UUID) (*models.Purchase, error) {
	clientID, err := uuid.Parse(input.Client)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, clientNotFoundMessage)
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, clientNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up client")
	}
	if client.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions on this client.")
	}

	status := enums.PurchaseStatusPending
	if input.Status != nil {
		status, err = enums.ParsePurchaseStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid purchase status.")
		}
	}

	items, err := s.reserveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		Total:    input.Total,
		ClientID: clientID,
		SellerID: sellerID,
		Status:   status,
		Items:    items,
	}
	created, err := s.repo.Create(ctx, purchase)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input PurchaseInput, sellerID uuid.UUID) (*models.Purchase, error) {
	purchase, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to update this purchase.")
	}
	clientID, err := uuid.Parse(input.Client)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, clientNotFoundMessage)
	}

	fields := map[string]any{
		"total":     input.Total,
		"client_id": clientID,
	}
	if input.Status != nil {
		status, err := enums.ParsePurchaseStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid purchase status.")
		}
		fields["status"] = status.String()
	}

	// TODO: decide whether an items update should restore the original
	// quantities before reserving the new ones, or reject item changes
	// outright. Until then the new quantities are reserved against current
	// stock with no credit for what the purchase already holds.
	var items []models.PurchaseItem
	if input.Items != nil {
		items, err = s.reserveItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, purchase.ID, fields, items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string, sellerID uuid.UUID) error {
	purchase, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if purchase.SellerID != sellerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to delete this purchase.")
	}
	if err := s.repo.Delete(ctx, purchase.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete purchase")
	}
	return nil
}

// reserveItems walks the requested lines in order, checking and decrementing
// stock one product at a time. Each decrement is persisted before the next
// line is evaluated, so a failure partway through leaves the earlier lines'
// stock already taken. The decrement itself is a conditional update, so two
// concurrent purchases cannot take the same units twice.
func (s *service) reserveItems(ctx context.Context, inputs []PurchaseItemInput) ([]models.PurchaseItem, error) {
	items := make([]models.PurchaseItem, 0, len(inputs))
	for _, line := range inputs {
		productID, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product does not exist.")
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product does not exist.")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up product")
		}

		qty := int(line.Quantity)
		if qty > product.Stock {
			return nil, insufficientStock(product.Name, product.Stock)
		}
		ok, err := s.products.DecrementStock(ctx, productID, qty)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !ok {
			// Lost the race since the read above. Re-read for the message.
			fresh, err := s.products.FindByID(ctx, productID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up product")
			}
			return nil, insufficientStock(fresh.Name, fresh.Stock)
		}

		items = append(items, models.PurchaseItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
		})
	}
	return items, nil
}

func insufficientStock(name string, remaining int) *pkgerrors.Error {
	return pkgerrors.New(
		pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("Requested quantity of %s, exceeds stock. Only %d units available", name, remaining),
	).WithDetails(map[string]any{
		"product":        name,
		"availableStock": remaining,
	})
}

func (s *service) load(ctx context.Context, id string) (*models.Purchase, error) {
	purchaseID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	purchase, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase")
	}
	return purchase, nil
}
