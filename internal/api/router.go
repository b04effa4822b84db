package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/motorpool/vehicle-registry/docs"
	"github.com/motorpool/vehicle-registry/internal/api/handler"
	"github.com/motorpool/vehicle-registry/internal/api/middleware"
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
	healthhandlers "github.com/motorpool/vehicle-registry/internal/infrastructure/http/handlers"
)

// registryPolicy is the single route policy table (operation → required
// roles). Create and read-one are open to both roles; listing, mutation, and
// deletion are admin-only. This asymmetry is deliberate.
var registryPolicy = middleware.Policy{
	"vehicles:create": {domain.RoleAdmin, domain.RoleUser},
	"vehicles:get":    {domain.RoleAdmin, domain.RoleUser},
	"vehicles:list":   {domain.RoleAdmin},
	"vehicles:update": {domain.RoleAdmin},
	"vehicles:delete": {domain.RoleAdmin},
	"events:list":     {domain.RoleAdmin},
}

// Dependencies carries everything the router needs to wire the API.
type Dependencies struct {
	AuthService    ports.AuthService
	VehicleService ports.VehicleService
	Tokens         ports.TokenService
	Events         ports.EventRepository
	Mongo          *mongo.Database
	Redis          *redis.Client
	Logger         zerolog.Logger
	Version        string
	// Metrics overrides the prometheus registerer for request metrics.
	// Nil means the global registerer.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	registerer := deps.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "vehicle_registry",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	vehicleHandler := handler.NewVehicleHandler(deps.VehicleService)
	eventHandler := handler.NewEventHandler(deps.Events)
	authRequired := middleware.Auth(deps.Tokens)

	// --- Root banner ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Vehicle Registry API",
			"version": deps.Version,
			"docs":    "/docs/index.html",
			"status":  "online",
		})
	})

	// --- Auth ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Vehicles ---
	v := e.Group("/api/vehiculos", authRequired)
	v.POST("", vehicleHandler.Create, registryPolicy.Require("vehicles:create"))
	v.GET("", vehicleHandler.List, registryPolicy.Require("vehicles:list"))
	v.GET("/:id", vehicleHandler.Get, registryPolicy.Require("vehicles:get"))
	v.PUT("/:id", vehicleHandler.Update, registryPolicy.Require("vehicles:update"))
	v.DELETE("/:id", vehicleHandler.Delete, registryPolicy.Require("vehicles:delete"))

	// --- Audit trail ---
	e.GET("/api/eventos", eventHandler.List, authRequired, registryPolicy.Require("events:list"))

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}
