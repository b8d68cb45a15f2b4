package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notFoundMessage = "Product does not exist."

// ProductInput carries the fields accepted for create and update.
type ProductInput struct {
	Name  string  `json:"name" validate:"required"`
	Stock int32   `json:"stock" validate:"min=0"`
	Price float64 `json:"price" validate:"min=0"`
}

// Service implements the product operations behind the resolvers.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, text string) ([]models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	SearchByName(ctx context.Context, text string) ([]models.Product, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs the product service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) Search(ctx context.Context, text string) ([]models.Product, error) {
	products, err := s.repo.SearchByName(ctx, text)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return products, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:  input.Name,
		Stock: int(input.Stock),
		Price: input.Price,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	updated, err := s.repo.Update(ctx, productID, map[string]any{
		"name":  input.Name,
		"stock": int(input.Stock),
		"price": input.Price,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
