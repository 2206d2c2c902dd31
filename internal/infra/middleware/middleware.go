package middleware

import (
	"github.com/flightops/routes-service/internal/app/auth"
	"github.com/flightops/routes-service/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, validator auth.TokenValidator, apiMetrics *metrics.APIMetrics) *Middleware {
	return &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(validator, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		tracingMiddleware:  NewTracingMiddleware(logger),
		metricsMiddleware:  NewMetricsMiddleware(apiMetrics, logger),
	}
}

// Authenticate exige um token de portador válido
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// Recovery recupera de pânicos e responde com o erro genérico
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// Tracing instrumenta as requisições com spans
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// Metrics coleta métricas por requisição
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}
