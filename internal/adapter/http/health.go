package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DatabaseChecker define a interface para verificar o banco de dados
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	db     DatabaseChecker
	logger *zap.Logger
}

// NewHealthChecker cria um novo health checker
func NewHealthChecker(db DatabaseChecker, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:     db,
		logger: logger,
	}
}

// LivenessCheck verifica se o aplicativo está vivo
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now().UTC(),
	})
}

// ReadinessCheck verifica se o aplicativo está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("banco de dados indisponível no health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"time":   time.Now().UTC(),
			"checks": gin.H{"database": "DOWN"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now().UTC(),
		"checks": gin.H{"database": "UP"},
	})
}
