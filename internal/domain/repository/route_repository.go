package repository

import (
	"context"
	"errors"

	"github.com/flightops/routes-service/internal/domain/model"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

// RouteRepository define a interface para armazenamento de trayectos
type RouteRepository interface {
	// Insert adiciona um novo trayecto
	Insert(ctx context.Context, route *model.Route) error

	// FindAll retorna todos os trayectos na ordem de iteração do banco
	FindAll(ctx context.Context) ([]*model.Route, error)

	// FindByFlightID retorna os trayectos com o flightId informado
	FindByFlightID(ctx context.Context, flightID string) ([]*model.Route, error)

	// FindByID obtém um trayecto pelo id
	FindByID(ctx context.Context, id string) (*model.Route, error)

	// DeleteByID remove um trayecto pelo id; reporta se algo foi removido
	DeleteByID(ctx context.Context, id string) (bool, error)

	// DeleteAll remove todos os trayectos
	DeleteAll(ctx context.Context) error
}
