package app

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/equiphub/internal/auth"
	"github.com/skillsenselab/equiphub/internal/auth/token"
	"github.com/skillsenselab/equiphub/internal/handler"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server/endpoint"
)

type routeDeps struct {
	serviceName string
	db          endpoint.Pinger
	tokens      *token.Service
	users       *repository.UserRepository

	authHandler *auth.Handler
	userHandler *handler.UserHandler
	roleHandler *handler.RoleHandler
	contract    *handler.ContractHandler
	equipment   *handler.EquipmentHandler
}

// registerRoutes mounts the public surface (health, auth) and the
// protected CRUD surface behind the identity middleware.
func registerRoutes(engine *gin.Engine, deps routeDeps) {
	engine.GET("/healthz", endpoint.Health(deps.serviceName))
	engine.GET("/readyz", endpoint.Readiness(deps.serviceName, deps.db))

	deps.authHandler.RegisterRoutes(engine)

	protected := engine.Group("/", auth.Middleware(deps.tokens, deps.users))
	deps.userHandler.RegisterRoutes(protected)
	deps.roleHandler.RegisterRoutes(protected)
	deps.contract.RegisterRoutes(protected)
	deps.equipment.RegisterRoutes(protected)
}
