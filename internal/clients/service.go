package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notFoundMessage = "Client does not exist."

// ClientInput carries the fields accepted for create and update.
type ClientInput struct {
	Name     string  `json:"name" validate:"required"`
	LastName string  `json:"lastName" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
	Company  string  `json:"company" validate:"required"`
}

// Service implements the client operations behind the resolvers. Every
// ownership-checked operation takes the caller's seller id explicitly.
type Service interface {
	List(ctx context.Context) ([]models.Client, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Client, error)
	Get(ctx context.Context, id string, sellerID uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, input ClientInput, sellerID uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, id string, input ClientInput, sellerID uuid.UUID) (*models.Client, error)
	Delete(ctx context.Context, id string, sellerID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Client, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs the client service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}
	return clients, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Client, error) {
	clients, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller clients")
	}
	return clients, nil
}

func (s *service) Get(ctx context.Context, id string, sellerID uuid.UUID) (*models.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to see this client.")
	}
	return client, nil
}

func (s *service) Create(ctx context.Context, input ClientInput, sellerID uuid.UUID) (*models.Client, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up client")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Client already registered.")
	}

	client := &models.Client{
		Name:     input.Name,
		LastName: input.LastName,
		Email:    email,
		Phone:    input.Phone,
		Company:  input.Company,
		SellerID: sellerID,
	}
	created, err := s.repo.Create(ctx, client)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Client already registered.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input ClientInput, sellerID uuid.UUID) (*models.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to manipulate this client.")
	}

	updated, err := s.repo.Update(ctx, client.ID, map[string]any{
		"name":      input.Name,
		"last_name": input.LastName,
		"email":     strings.ToLower(strings.TrimSpace(input.Email)),
		"phone":     input.Phone,
		"company":   input.Company,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Client already registered.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string, sellerID uuid.UUID) error {
	client, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if client.SellerID != sellerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "You do not have permissions to delete this client.")
	}
	if err := s.repo.Delete(ctx, client.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return nil
}

func (s *service) load(ctx context.Context, id string) (*models.Client, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}
