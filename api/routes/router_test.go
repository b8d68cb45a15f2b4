package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/crmgraphql-backend/graph"
	"github.com/angelmondragon/crmgraphql-backend/internal/auth"
	"github.com/angelmondragon/crmgraphql-backend/internal/clients"
	"github.com/angelmondragon/crmgraphql-backend/internal/products"
	"github.com/angelmondragon/crmgraphql-backend/internal/purchases"
	"github.com/angelmondragon/crmgraphql-backend/internal/users"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return assert.AnError }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "crmgraphql-test",
		ExpirationHours: 24,
	}
	return cfg
}

func newTestRouter(t *testing.T, pinger interface {
	Ping(context.Context) error
}) http.Handler {
	t.Helper()
	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Client{},
		&models.Purchase{},
		&models.PurchaseItem{},
	))

	cfg := testConfig()
	userRepo := users.NewRepository(gdb)
	productRepo := products.NewRepository(gdb)
	clientRepo := clients.NewRepository(gdb)

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		JWTConfig:   cfg.JWT,
		PasswordCfg: config.PasswordConfig{BcryptCost: 4},
	})
	require.NoError(t, err)
	productSvc, err := products.NewService(productRepo)
	require.NoError(t, err)
	clientSvc, err := clients.NewService(clientRepo)
	require.NoError(t, err)
	purchaseSvc, err := purchases.NewService(purchases.ServiceParams{
		Repo:     purchases.NewRepository(gdb),
		Products: productRepo,
		Clients:  clientRepo,
		Sellers:  userRepo,
	})
	require.NoError(t, err)

	resolver, err := graph.NewResolver(graph.ResolverParams{
		Auth:      authSvc,
		Users:     userRepo,
		Products:  productSvc,
		Clients:   clientSvc,
		Purchases: purchaseSvc,
	})
	require.NoError(t, err)

	return NewRouter(cfg, nil, pinger, graph.MustParseSchema(resolver))
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, okPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-CRM-Env"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessFailsWhenDatabaseIsDown(t *testing.T) {
	router := newTestRouter(t, failingPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGraphQLEndpointServesQueries(t *testing.T) {
	router := newTestRouter(t, okPinger{})

	body := strings.NewReader(`{"query":"{ getProducts { id } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data["getProducts"])
}

func TestGraphQLRejectsInvalidToken(t *testing.T) {
	router := newTestRouter(t, okPinger{})

	body := strings.NewReader(`{"query":"{ getProducts { id } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
