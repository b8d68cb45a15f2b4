package clients

import (
	"context"
	"testing"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:clients_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Client{}))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func validInput(email string) ClientInput {
	phone := "555-0100"
	return ClientInput{
		Name:     "Carol",
		LastName: "Jones",
		Email:    email,
		Phone:    &phone,
		Company:  "Acme",
	}
}

func TestCreateAssignsSellerAndRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	created, err := svc.Create(ctx, validInput("carol@acme.test"), seller)
	require.NoError(t, err)
	assert.Equal(t, seller, created.SellerID)

	_, err = svc.Create(ctx, validInput("carol@acme.test"), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.Create(ctx, validInput("owned@acme.test"), owner)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, created.ID.String(), stranger)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdateAndDeleteByNonOwnerAreForbidden(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.Create(ctx, validInput("victim@acme.test"), owner)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID.String(), validInput("victim@acme.test"), stranger)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	err = svc.Delete(ctx, created.ID.String(), stranger)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	// the record is untouched for its owner
	got, err := svc.Get(ctx, created.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, "Carol", got.Name)
}

func TestUpdateKeepsSellerImmutable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, validInput("pin@acme.test"), owner)
	require.NoError(t, err)

	input := validInput("pin@acme.test")
	input.Company = "NewCo"
	updated, err := svc.Update(ctx, created.ID.String(), input, owner)
	require.NoError(t, err)
	assert.Equal(t, "NewCo", updated.Company)
	assert.Equal(t, owner, updated.SellerID)
}

func TestMalformedAndMissingIDsAreNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	_, err := svc.Get(ctx, "definitely-not-a-uuid", seller)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Client does not exist.", typed.Message())

	_, err = svc.Get(ctx, uuid.NewString(), seller)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListScoping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sellerA := uuid.New()
	sellerB := uuid.New()

	_, err := svc.Create(ctx, validInput("a1@acme.test"), sellerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("a2@acme.test"), sellerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("b1@acme.test"), sellerB)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.ListBySeller(ctx, sellerA)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
