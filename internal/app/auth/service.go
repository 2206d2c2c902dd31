package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TokenValidator define a capacidade de verificar um token de portador
type TokenValidator interface {
	// IsValid responde se o token é aceito pelo serviço de identidade.
	// Falhas de transporte são reportadas como erro, não como token inválido.
	IsValid(ctx context.Context, token string) (bool, error)
}

// UserService valida tokens delegando ao serviço externo de usuários.
// Cada requisição revalida o token; não há cache nem retry.
type UserService struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewUserService cria um validador de tokens contra o serviço de usuários
func NewUserService(baseURL string, timeout time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// IsValid apresenta o token ao endpoint /users/me do serviço de usuários.
// Qualquer resposta com status diferente de 200 é tratada como token
// inválido.
func (s *UserService) IsValid(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/users/me", nil)
	if err != nil {
		return false, fmt.Errorf("falha ao montar requisição para o serviço de usuários: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("falha ao consultar o serviço de usuários", zap.Error(err))
		return false, fmt.Errorf("falha ao consultar o serviço de usuários: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
