package purchases

import (
	"context"
	"testing"

	"github.com/angelmondragon/crmgraphql-backend/internal/clients"
	"github.com/angelmondragon/crmgraphql-backend/internal/products"
	"github.com/angelmondragon/crmgraphql-backend/internal/users"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	"github.com/angelmondragon/crmgraphql-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	svc      Service
	db       *gorm.DB
	products *products.Repository
	clients  *clients.Repository
	users    *users.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:purchases_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Client{},
		&models.Purchase{},
		&models.PurchaseItem{},
	))

	productRepo := products.NewRepository(db)
	clientRepo := clients.NewRepository(db)
	userRepo := users.NewRepository(db)

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Products: productRepo,
		Clients:  clientRepo,
		Sellers:  userRepo,
	})
	require.NoError(t, err)
	return &testEnv{svc: svc, db: db, products: productRepo, clients: clientRepo, users: userRepo}
}

func (e *testEnv) seedProduct(t *testing.T, name string, stock int, price float64) *models.Product {
	t.Helper()
	product, err := e.products.Create(context.Background(), &models.Product{
		Name:  name,
		Stock: stock,
		Price: price,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) seedClient(t *testing.T, email string, sellerID uuid.UUID) *models.Client {
	t.Helper()
	client, err := e.clients.Create(context.Background(), &models.Client{
		Name:     "Carol",
		LastName: "Jones",
		Email:    email,
		Company:  "Acme",
		SellerID: sellerID,
	})
	require.NoError(t, err)
	return client
}

func (e *testEnv) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := e.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func TestCreateDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 5, 19.99)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 3}},
		Total:  59.97,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)
	assert.Equal(t, seller, created.SellerID)
	assert.Equal(t, enums.PurchaseStatusPending, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Widget", created.Items[0].Name)
	assert.Equal(t, 19.99, created.Items[0].Price)
	assert.Equal(t, 2, env.stockOf(t, widget.ID))

	_, err = env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 3}},
		Total:  59.97,
		Client: client.ID.String(),
	}, seller)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Requested quantity of Widget, exceeds stock. Only 2 units available", typed.Message())
	assert.Equal(t, 2, env.stockOf(t, widget.ID))
}

func TestCreateFailurePartwayLeavesEarlierDecrements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	plenty := env.seedProduct(t, "Plenty", 5, 10)
	scarce := env.seedProduct(t, "Scarce", 1, 10)

	_, err := env.svc.Create(ctx, PurchaseInput{
		Items: []PurchaseItemInput{
			{ID: plenty.ID.String(), Quantity: 2},
			{ID: scarce.ID.String(), Quantity: 3},
		},
		Total:  50,
		Client: client.ID.String(),
	}, seller)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())

	// The first line's stock was already taken when the second failed.
	assert.Equal(t, 3, env.stockOf(t, plenty.ID))
	assert.Equal(t, 1, env.stockOf(t, scarce.ID))
}

func TestCreateRejectsForeignAndMissingClients(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	foreign := env.seedClient(t, "other@acme.test", uuid.New())
	widget := env.seedProduct(t, "Widget", 5, 10)

	input := PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: foreign.ID.String(),
	}
	_, err := env.svc.Create(ctx, input, seller)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	input.Client = "not-a-uuid"
	_, err = env.svc.Create(ctx, input, seller)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, 5, env.stockOf(t, widget.ID))
}

func TestGetEnforcesOwnershipAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 5, 10)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	got, err := env.svc.Get(ctx, created.ID.String(), seller)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = env.svc.Get(ctx, created.ID.String(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = env.svc.Get(ctx, "garbage", seller)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = env.svc.Get(ctx, uuid.NewString(), seller)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateReDecrementsWithoutRestoring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 10, 10)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 2}},
		Total:  20,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)
	require.Equal(t, 8, env.stockOf(t, widget.ID))

	completed := enums.PurchaseStatusCompleted.String()
	updated, err := env.svc.Update(ctx, created.ID.String(), PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
		Status: &completed,
	}, seller)
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseStatusCompleted, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 1, updated.Items[0].Quantity)

	// The original two units are not credited back before the new quantity
	// is reserved.
	assert.Equal(t, 7, env.stockOf(t, widget.ID))
}

func TestUpdateWithoutItemsKeepsLineItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 10, 10)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 2}},
		Total:  20,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	cancelled := enums.PurchaseStatusCancelled.String()
	updated, err := env.svc.Update(ctx, created.ID.String(), PurchaseInput{
		Total:  20,
		Client: client.ID.String(),
		Status: &cancelled,
	}, seller)
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseStatusCancelled, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 8, env.stockOf(t, widget.ID))
}

func TestUpdateAndDeleteByNonOwnerAreForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 5, 10)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, created.ID.String(), PurchaseInput{
		Total:  10,
		Client: client.ID.String(),
	}, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	err = env.svc.Delete(ctx, created.ID.String(), uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestDeleteDoesNotRestoreStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 5, 10)

	created, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 2}},
		Total:  20,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, created.ID.String(), seller))
	assert.Equal(t, 3, env.stockOf(t, widget.ID))

	_, err = env.svc.Get(ctx, created.ID.String(), seller)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListByStatusFiltersExactly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 20, 10)

	completed := enums.PurchaseStatusCompleted.String()
	_, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
		Status: &completed,
	}, seller)
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	got, err := env.svc.ListByStatus(ctx, seller, completed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, enums.PurchaseStatusCompleted, got[0].Status)

	_, err = env.svc.ListByStatus(ctx, seller, "Shipped")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListBySellerPopulatesClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	client := env.seedClient(t, "buyer@acme.test", seller)
	widget := env.seedProduct(t, "Widget", 20, 10)

	_, err := env.svc.Create(ctx, PurchaseInput{
		Items:  []PurchaseItemInput{{ID: widget.ID.String(), Quantity: 1}},
		Total:  10,
		Client: client.ID.String(),
	}, seller)
	require.NoError(t, err)

	mine, err := env.svc.ListBySeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Client)
	assert.Equal(t, client.Email, mine[0].Client.Email)

	all, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := env.svc.ListBySeller(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
