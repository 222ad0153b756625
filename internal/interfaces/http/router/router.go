package router

import (
	"github.com/gin-gonic/gin"
	"github.com/refdata/backend/internal/infrastructure/auth"
	"github.com/refdata/backend/internal/infrastructure/logger"
	"github.com/refdata/backend/internal/infrastructure/telemetry"
	"github.com/refdata/backend/internal/interfaces/http/handler"
	"github.com/refdata/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies carries everything the router wires together
type Dependencies struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Metrics    *telemetry.Metrics

	System      *handler.SystemHandler
	Cities      *handler.CityHandler
	Warehouses  *handler.WarehouseHandler
	Storages    *handler.StorageHandler
	CashRegs    *handler.CashRegisterHandler
	Entities    *handler.LegalEntityHandler
	EntityTypes *handler.EntityTypeHandler
	Relations   *handler.RelationHandler
}

// New builds the gin engine with the full middleware stack and all
// routes. /health and /metrics stay outside authentication.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.CORS())
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.GinMiddleware())
	}
	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTConfig{
		JWTService: deps.JWTService,
		SkipPaths:  []string{"/health", "/metrics"},
		Logger:     deps.Logger,
	}))

	engine.GET("/health", deps.System.Health)
	if deps.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := engine.Group("/api")

	cities := api.Group("/cities")
	{
		cities.POST("/add", middleware.RequirePermission("add_city"), deps.Cities.Create)
		cities.GET("/all", deps.Cities.List)
		cities.GET("/:id", deps.Cities.GetByID)
		cities.PATCH("/:id", middleware.RequirePermission("edit_city"), deps.Cities.Update)
		cities.DELETE("/:id", middleware.RequirePermission("delete_city"), deps.Cities.Delete)
	}

	warehouses := api.Group("/warehouses")
	{
		warehouses.POST("/add", middleware.RequirePermission("add_warehouse"), deps.Warehouses.Create)
		warehouses.GET("/all", deps.Warehouses.List)
		warehouses.GET("/:id", deps.Warehouses.GetByID)
		warehouses.PATCH("/:id", middleware.RequirePermission("edit_warehouse"), deps.Warehouses.Update)
		warehouses.DELETE("/:id", middleware.RequirePermission("delete_warehouse"), deps.Warehouses.Delete)
	}

	storages := api.Group("/storages")
	{
		storages.POST("/add", middleware.RequirePermission("add_storage"), deps.Storages.Create)
		storages.GET("/all", deps.Storages.List)
		storages.GET("/:id", deps.Storages.GetByID)
		storages.PATCH("/:id", middleware.RequirePermission("edit_storage"), deps.Storages.Update)
		storages.DELETE("/:id", middleware.RequirePermission("delete_storage"), deps.Storages.Delete)
	}

	registers := api.Group("/cash-registers")
	{
		registers.POST("/add", middleware.RequirePermission("add_cash_register"), deps.CashRegs.Create)
		registers.GET("/all", deps.CashRegs.List)
		registers.GET("/:id", deps.CashRegs.GetByID)
		registers.PATCH("/:id", middleware.RequirePermission("edit_cash_register"), deps.CashRegs.Update)
		registers.DELETE("/:id", middleware.RequirePermission("delete_cash_register"), deps.CashRegs.Delete)
	}

	entityTypes := api.Group("/legal-entity-types")
	{
		entityTypes.GET("/all", deps.EntityTypes.List)
	}

	// Named routes must be registered before the /:id catch-all so gin
	// does not shadow them.
	entities := api.Group("/legal-entities")
	{
		entities.POST("/add", middleware.RequirePermission("add_legal_entity"), deps.Entities.Create)
		entities.POST("/add-by-inn", middleware.RequirePermission("add_legal_entity"), deps.Entities.AddByINN)
		entities.POST("/by-ids", deps.Entities.GetByIDs)
		entities.GET("/all", deps.Entities.List)
		entities.GET("/get-buyers", deps.Entities.GetBuyers)
		entities.GET("/get-sellers", deps.Entities.GetSellers)
		entities.GET("/get-by-company", deps.Entities.GetByCompany)
		entities.GET("/inn-kpp", deps.Entities.FindByINNKPP)
		entities.GET("/:id", deps.Entities.GetByID)
		entities.PATCH("/:id", middleware.RequirePermission("edit_legal_entity"), deps.Entities.Update)
		entities.DELETE("/:id", middleware.RequirePermission("delete_legal_entity"), deps.Entities.Delete)
	}

	relations := api.Group("/entity-company-relations")
	{
		relations.POST("/add", middleware.RequirePermission("add_entity_company_relation"), deps.Relations.Create)
		relations.GET("/all", deps.Relations.List)
		relations.GET("/:id", deps.Relations.GetByID)
		relations.PATCH("/:id", middleware.RequirePermission("edit_entity_company_relation"), deps.Relations.Update)
		relations.DELETE("/:id", middleware.RequirePermission("delete_entity_company_relation"), deps.Relations.Delete)
	}

	return engine
}
