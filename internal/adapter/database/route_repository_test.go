package database_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/flightops/routes-service/internal/adapter/database"
	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/flightops/routes-service/internal/domain/repository"
	"github.com/flightops/routes-service/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// newTestRepository abre um banco sqlite em memória isolado por teste.
func newTestRepository(t *testing.T) repository.RouteRepository {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.NewDatabase(context.Background(), database.Config{
		Driver:          "sqlite",
		DSN:             dsn,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
		LogLevel:        logger.Silent,
		SlowThreshold:   time.Second,
	}, testutils.TestLogger(t))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return database.NewRouteRepository(db.DB(), testutils.TestLogger(t))
}

func newStoredRoute(flightID string) *model.Route {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.Route{
		ID:                 uuid.NewString(),
		FlightID:           flightID,
		SourceAirportCode:  "BOG",
		SourceCountry:      "Colombia",
		DestinyAirportCode: "LIM",
		DestinyCountry:     "Peru",
		BagCost:            35.5,
		PlannedStartDate:   now.Add(24 * time.Hour),
		PlannedEndDate:     now.Add(48 * time.Hour),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestInsertAndFindByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	route := newStoredRoute("AV-205")
	require.NoError(t, repo.Insert(ctx, route))

	found, err := repo.FindByID(ctx, route.ID)
	require.NoError(t, err)

	assert.Equal(t, route.ID, found.ID)
	assert.Equal(t, "AV-205", found.FlightID)
	assert.Equal(t, "BOG", found.SourceAirportCode)
	assert.Equal(t, "Colombia", found.SourceCountry)
	assert.Equal(t, "LIM", found.DestinyAirportCode)
	assert.Equal(t, "Peru", found.DestinyCountry)
	assert.Equal(t, 35.5, found.BagCost)
	assert.WithinDuration(t, route.PlannedStartDate, found.PlannedStartDate, time.Second)
	assert.WithinDuration(t, route.PlannedEndDate, found.PlannedEndDate, time.Second)
	assert.WithinDuration(t, route.CreatedAt, found.CreatedAt, time.Second)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrRouteNotFound)
}

func TestFindAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("empty store returns an empty slice", func(t *testing.T) {
		routes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, routes)
	})

	t.Run("returns routes in insertion order", func(t *testing.T) {
		first := newStoredRoute("AV-205")
		second := newStoredRoute("LA-330")
		require.NoError(t, repo.Insert(ctx, first))
		require.NoError(t, repo.Insert(ctx, second))

		routes, err := repo.FindAll(ctx)
		require.NoError(t, err)

		require.Len(t, routes, 2)
		assert.Equal(t, first.ID, routes[0].ID)
		assert.Equal(t, second.ID, routes[1].ID)
	})
}

func TestFindByFlightID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newStoredRoute("AV-205")))
	require.NoError(t, repo.Insert(ctx, newStoredRoute("LA-330")))

	routes, err := repo.FindByFlightID(ctx, "AV-205")
	require.NoError(t, err)

	require.Len(t, routes, 1)
	assert.Equal(t, "AV-205", routes[0].FlightID)

	routes, err = repo.FindByFlightID(ctx, "IB-999")
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestDeleteByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	route := newStoredRoute("AV-205")
	require.NoError(t, repo.Insert(ctx, route))

	t.Run("an absent id deletes nothing", func(t *testing.T) {
		deleted, err := repo.DeleteByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("an existing id is removed", func(t *testing.T) {
		deleted, err := repo.DeleteByID(ctx, route.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.FindByID(ctx, route.ID)
		assert.ErrorIs(t, err, repository.ErrRouteNotFound)
	})
}

func TestDeleteAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newStoredRoute("AV-205")))
	require.NoError(t, repo.Insert(ctx, newStoredRoute("LA-330")))

	require.NoError(t, repo.DeleteAll(ctx))

	routes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, routes)

	// repetir sobre um banco vazio não deve falhar
	require.NoError(t, repo.DeleteAll(ctx))
}
