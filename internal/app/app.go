// Package app assembles the equiphub service: it builds every collaborator
// once, wires the route table, and owns the startup/shutdown sequence.
package app

import (
	"context"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/skillsenselab/equiphub/internal/auth"
	"github.com/skillsenselab/equiphub/internal/auth/password"
	"github.com/skillsenselab/equiphub/internal/auth/token"
	"github.com/skillsenselab/equiphub/internal/config"
	"github.com/skillsenselab/equiphub/internal/database"
	"github.com/skillsenselab/equiphub/internal/handler"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/observability"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server"
)

// App holds the wired service.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	server *server.Server
	tracer *sdktrace.TracerProvider
}

// New builds the full dependency graph from configuration. Construction
// happens exactly once; every collaborator is passed explicitly.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	tracer, err := observability.InitTracer(ctx, cfg.Name, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(
			&model.User{}, &model.Role{},
			&model.Contract{}, &model.Equipment{},
		); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	hasher := password.NewBcryptHasher(password.WithCost(cfg.Auth.BcryptCost))
	tokens, err := token.NewService(token.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	users := repository.NewUserRepository(db, hasher)
	roles := repository.NewRoleRepository(db)
	contracts := repository.NewContractRepository(db)
	equipment := repository.NewEquipmentRepository(db)

	resolver := auth.NewRoleResolver(roles, log)
	authService := auth.NewService(users, resolver, hasher, tokens, log)

	srv := server.New(cfg.Server, log)
	registerRoutes(srv.GinEngine(), routeDeps{
		serviceName: cfg.Name,
		db:          db,
		tokens:      tokens,
		users:       users,
		authHandler: auth.NewHandler(authService),
		userHandler: handler.NewUserHandler(users, resolver),
		roleHandler: handler.NewRoleHandler(roles),
		contract:    handler.NewContractHandler(contracts),
		equipment:   handler.NewEquipmentHandler(equipment),
	})

	return &App{
		cfg:    cfg,
		log:    log.WithComponent("app"),
		db:     db,
		server: srv,
		tracer: tracer,
	}, nil
}

// Start begins serving HTTP traffic.
func (a *App) Start(ctx context.Context) error {
	a.log.Info("Starting service", map[string]interface{}{
		"name":        a.cfg.Name,
		"version":     a.cfg.Version,
		"environment": a.cfg.Environment,
	})
	return a.server.Start(ctx)
}

// Stop shuts the service down in reverse construction order: HTTP server
// first, then the tracer flush, then the database pool.
func (a *App) Stop(ctx context.Context) error {
	var firstErr error
	if err := a.server.Stop(ctx); err != nil {
		firstErr = err
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
