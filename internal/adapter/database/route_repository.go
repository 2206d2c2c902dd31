package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/flightops/routes-service/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouteRepository implementa repository.RouteRepository
type RouteRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRouteRepository cria um novo repositório de trayectos
func NewRouteRepository(db *gorm.DB, logger *zap.Logger) repository.RouteRepository {
	tracer := otel.GetTracerProvider().Tracer("routes-service.repository.route")

	return &RouteRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// Insert adiciona um novo trayecto
func (r *RouteRepository) Insert(ctx context.Context, route *model.Route) error {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.Insert",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "route"),
			attribute.String("route.id", route.ID),
		),
	)
	defer span.End()

	entity := modelToEntity(route)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao inserir trayecto",
			zap.String("id", route.ID),
			zap.String("flightId", route.FlightID),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao inserir trayecto: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// FindAll retorna todos os trayectos na ordem de iteração do banco
func (r *RouteRepository) FindAll(ctx context.Context) ([]*model.Route, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.FindAll",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "route"),
		),
	)
	defer span.End()

	var entities []model.RouteEntity

	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar trayectos", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar trayectos: %w", err)
	}

	routes := make([]*model.Route, 0, len(entities))
	for i := range entities {
		routes = append(routes, entityToModel(&entities[i]))
	}

	span.SetAttributes(attribute.Int("routes.count", len(routes)))
	span.SetStatus(codes.Ok, "")
	return routes, nil
}

// FindByFlightID retorna os trayectos com o flightId informado
func (r *RouteRepository) FindByFlightID(ctx context.Context, flightID string) ([]*model.Route, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.FindByFlightID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "route"),
			attribute.String("route.flight_id", flightID),
		),
	)
	defer span.End()

	var entities []model.RouteEntity

	if err := r.db.WithContext(ctx).Where("flight_id = ?", flightID).Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar trayectos por flightId",
			zap.String("flightId", flightID),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar trayectos por flightId: %w", err)
	}

	routes := make([]*model.Route, 0, len(entities))
	for i := range entities {
		routes = append(routes, entityToModel(&entities[i]))
	}

	span.SetAttributes(attribute.Int("routes.count", len(routes)))
	span.SetStatus(codes.Ok, "")
	return routes, nil
}

// FindByID obtém um trayecto pelo id
func (r *RouteRepository) FindByID(ctx context.Context, id string) (*model.Route, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.FindByID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "route"),
			attribute.String("route.id", id),
		),
	)
	defer span.End()

	var entity model.RouteEntity

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetAttributes(attribute.Bool("route.found", false))
			span.SetStatus(codes.Error, "route not found")
			return nil, repository.ErrRouteNotFound
		}
		r.logger.Error("falha ao buscar trayecto por id",
			zap.String("id", id),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar trayecto: %w", err)
	}

	span.SetAttributes(attribute.Bool("route.found", true))
	span.SetStatus(codes.Ok, "")
	return entityToModel(&entity), nil
}

// DeleteByID remove um trayecto pelo id
func (r *RouteRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.DeleteByID",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "route"),
			attribute.String("route.id", id),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RouteEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao remover trayecto",
			zap.String("id", id),
			zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return false, fmt.Errorf("falha ao remover trayecto: %w", result.Error)
	}

	deleted := result.RowsAffected > 0
	span.SetAttributes(attribute.Bool("route.deleted", deleted))
	span.SetStatus(codes.Ok, "")
	return deleted, nil
}

// DeleteAll remove todos os trayectos
func (r *RouteRepository) DeleteAll(ctx context.Context) error {
	ctx, span := r.tracer.Start(
		ctx,
		"RouteRepository.DeleteAll",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "route"),
		),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.RouteEntity{}).Error; err != nil {
		r.logger.Error("falha ao remover todos os trayectos", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao remover todos os trayectos: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// entityToModel converte a entidade de banco para o modelo de domínio
func entityToModel(entity *model.RouteEntity) *model.Route {
	return &model.Route{
		ID:                 entity.ID,
		FlightID:           entity.FlightID,
		SourceAirportCode:  entity.SourceAirportCode,
		SourceCountry:      entity.SourceCountry,
		DestinyAirportCode: entity.DestinyAirportCode,
		DestinyCountry:     entity.DestinyCountry,
		BagCost:            entity.BagCost,
		PlannedStartDate:   entity.PlannedStartDate.UTC(),
		PlannedEndDate:     entity.PlannedEndDate.UTC(),
		CreatedAt:          entity.CreatedAt.UTC(),
		UpdatedAt:          entity.UpdatedAt.UTC(),
	}
}

// modelToEntity converte o modelo de domínio para a entidade de banco
func modelToEntity(route *model.Route) *model.RouteEntity {
	return &model.RouteEntity{
		ID:                 route.ID,
		FlightID:           route.FlightID,
		SourceAirportCode:  route.SourceAirportCode,
		SourceCountry:      route.SourceCountry,
		DestinyAirportCode: route.DestinyAirportCode,
		DestinyCountry:     route.DestinyCountry,
		BagCost:            route.BagCost,
		PlannedStartDate:   route.PlannedStartDate.UTC(),
		PlannedEndDate:     route.PlannedEndDate.UTC(),
		CreatedAt:          route.CreatedAt.UTC(),
		UpdatedAt:          route.UpdatedAt.UTC(),
	}
}
