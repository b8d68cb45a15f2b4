package main

import (
	"context"
	"net/http"
	"os"

	"github.com/angelmondragon/crmgraphql-backend/api/routes"
	"github.com/angelmondragon/crmgraphql-backend/graph"
	"github.com/angelmondragon/crmgraphql-backend/internal/auth"
	"github.com/angelmondragon/crmgraphql-backend/internal/clients"
	"github.com/angelmondragon/crmgraphql-backend/internal/products"
	"github.com/angelmondragon/crmgraphql-backend/internal/purchases"
	"github.com/angelmondragon/crmgraphql-backend/internal/users"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db"
	"github.com/angelmondragon/crmgraphql-backend/pkg/logger"
	"github.com/angelmondragon/crmgraphql-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	clientRepo := clients.NewRepository(dbClient.DB())
	purchaseRepo := purchases.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	clientService, err := clients.NewService(clientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchases.ServiceParams{
		Repo:     purchaseRepo,
		Products: productRepo,
		Clients:  clientRepo,
		Sellers:  userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
		os.Exit(1)
	}

	resolver, err := graph.NewResolver(graph.ResolverParams{
		Auth:      authService,
		Users:     userRepo,
		Products:  productService,
		Clients:   clientService,
		Purchases: purchaseService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create resolver", err)
		os.Exit(1)
	}
	schema := graph.MustParseSchema(resolver)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, schema),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
