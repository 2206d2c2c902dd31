package middleware

import (
	"net/http"
	"strings"

	"github.com/flightops/routes-service/internal/app/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware protege os endpoints que exigem token de portador
type AuthMiddleware struct {
	validator auth.TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(validator auth.TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// Authenticate extrai o token do cabeçalho Authorization e o valida contra o
// serviço de usuários. Cabeçalho ausente ou sem o prefixo Bearer resulta em
// 403; token rejeitado resulta em 401. Uma falha de transporte na validação
// não é tratada como token inválido e vira o erro genérico 500.
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "No hay token en la solicitud"})
		return
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	valid, err := m.validator.IsValid(c.Request.Context(), token)
	if err != nil {
		m.logger.Error("falha ao validar token", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		return
	}

	if !valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "El token no es válido o está vencido."})
		return
	}

	c.Next()
}
