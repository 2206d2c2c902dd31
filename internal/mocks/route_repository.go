package mocks

import (
	"context"

	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockRouteRepository é um mock para o repository.RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Insert(ctx context.Context, route *model.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) FindAll(ctx context.Context) ([]*model.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Route), args.Error(1)
}

func (m *MockRouteRepository) FindByFlightID(ctx context.Context, flightID string) ([]*model.Route, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Route), args.Error(1)
}

func (m *MockRouteRepository) FindByID(ctx context.Context, id string) (*model.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Route), args.Error(1)
}

func (m *MockRouteRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRouteRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
