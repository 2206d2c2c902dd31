package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTokenValidator é um mock para o auth.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) IsValid(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
