package products

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
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestProductCRUD(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Widget", Stock: 5, Price: 9.99})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 5, got.Stock)

	updated, err := svc.Update(ctx, created.ID.String(), ProductInput{Name: "Widget Pro", Stock: 0, Price: 19.99})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 19.99, updated.Price)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetMalformedIDIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product does not exist.", typed.Message())
}

func TestGetMissingRecordIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.NewString())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateAndDeleteMissingAreNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.NewString(), ProductInput{Name: "x", Stock: 1, Price: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.Delete(ctx, "bogus")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Widget", "Gadget", "widgette"} {
		_, err := svc.Create(ctx, ProductInput{Name: name, Stock: 1, Price: 1})
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "wid")
	require.NoError(t, err)
	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Widget", "widgette"}, names)

	empty, err := svc.Search(ctx, "does-not-match")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
