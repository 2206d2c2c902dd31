package app

import (
	"context"
	"fmt"

	"github.com/flightops/routes-service/internal/adapter/database"
	"github.com/flightops/routes-service/internal/adapter/http"
	"github.com/flightops/routes-service/internal/app/auth"
	"github.com/flightops/routes-service/internal/app/route"
	"github.com/flightops/routes-service/internal/infra/metrics"
	"github.com/flightops/routes-service/internal/infra/middleware"
	"github.com/flightops/routes-service/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// App agrega as dependências da aplicação, construídas uma única vez na
// inicialização e injetadas nas camadas que as utilizam.
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *database.Database
	RouteService  *route.Service
	RouteHandler  *http.RouteHandler
	HealthChecker *http.HealthChecker
	Middleware    *middleware.Middleware
	APIMetrics    *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormlogger.Warn,
		SlowThreshold:   cfg.Database.SlowThreshold,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("falha ao inicializar banco de dados: %w", err)
	}

	// Repositório e casos de uso
	routeRepo := database.NewRouteRepository(db.DB(), logger)
	routeService := route.NewService(routeRepo, logger)

	// Validação de tokens delegada ao serviço externo de usuários
	tokenValidator := auth.NewUserService(cfg.Auth.UsersURL, cfg.Auth.Timeout, logger)

	apiMetrics := metrics.NewAPIMetrics()
	middlewares := middleware.NewMiddleware(logger, tokenValidator, apiMetrics)

	routeHandler := http.NewRouteHandler(routeService, logger)
	healthChecker := http.NewHealthChecker(db, logger)

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		RouteService:  routeService,
		RouteHandler:  routeHandler,
		HealthChecker: healthChecker,
		Middleware:    middlewares,
		APIMetrics:    apiMetrics,
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Tracing())

	if a.Config.Metrics.Enabled {
		router.Use(a.Middleware.Metrics())
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	router.GET("/health", a.HealthChecker.LivenessCheck)
	router.GET("/health/readiness", a.HealthChecker.ReadinessCheck)

	// Endpoints públicos de suporte
	public := router.Group("/routes")
	{
		public.GET("/ping", a.RouteHandler.Ping)
		public.POST("/reset", a.RouteHandler.Reset)
	}

	// Endpoints protegidos por token de portador
	protected := router.Group("/routes")
	protected.Use(a.Middleware.Authenticate)
	{
		protected.POST("", a.RouteHandler.CreateRoute)
		protected.GET("", a.RouteHandler.ListRoutes)
		protected.GET("/:id", a.RouteHandler.GetRouteByID)
		protected.DELETE("/:id", a.RouteHandler.DeleteRoute)
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}
