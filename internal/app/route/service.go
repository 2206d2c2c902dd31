package route

import (
	"context"
	"time"

	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/flightops/routes-service/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implementa os casos de uso de trayectos
type Service struct {
	repo   repository.RouteRepository
	logger *zap.Logger
}

func NewService(repo repository.RouteRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateResult é o resultado da criação de um trayecto
type CreateResult struct {
	ID        string
	CreatedAt time.Time
}

// Create valida a entrada, aplica as regras de negócio e persiste um novo
// trayecto. A cadeia de validação interrompe no primeiro erro: campos
// obrigatórios, formato das datas, regras de datas e unicidade do flightId.
func (s *Service) Create(ctx context.Context, input *model.CreateRouteInput) (*CreateResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	start, end, err := input.PlannedWindow()
	if err != nil {
		return nil, err
	}

	// O início deve ser estritamente anterior ao fim e não pode estar no
	// passado no instante da criação.
	now := time.Now().UTC()
	if !start.Before(end) || start.Before(now) {
		return nil, model.ErrInvalidDates
	}

	// Verificação de unicidade antes do insert. Há uma janela entre a
	// consulta e o insert em criações concorrentes com o mesmo flightId;
	// o banco não impõe restrição de unicidade sobre flight_id.
	existing, err := s.repo.FindByFlightID(ctx, *input.FlightID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, model.ErrFlightIDExists
	}

	createdAt := time.Now().UTC()
	newRoute := &model.Route{
		ID:                 uuid.NewString(),
		FlightID:           *input.FlightID,
		SourceAirportCode:  *input.SourceAirportCode,
		SourceCountry:      *input.SourceCountry,
		DestinyAirportCode: *input.DestinyAirportCode,
		DestinyCountry:     *input.DestinyCountry,
		BagCost:            *input.BagCost,
		PlannedStartDate:   start,
		PlannedEndDate:     end,
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}

	if err := s.repo.Insert(ctx, newRoute); err != nil {
		return nil, err
	}

	s.logger.Info("trayecto criado",
		zap.String("id", newRoute.ID),
		zap.String("flightId", newRoute.FlightID))

	return &CreateResult{ID: newRoute.ID, CreatedAt: createdAt}, nil
}

// List retorna os trayectos cadastrados, opcionalmente filtrados por
// flightId. Qualquer valor não vazio é aceito como filtro; o valor vazio
// significa "sem filtro".
func (s *Service) List(ctx context.Context, flightID string) ([]*model.Route, error) {
	if flightID != "" {
		return s.repo.FindByFlightID(ctx, flightID)
	}
	return s.repo.FindAll(ctx)
}

// GetByID obtém um trayecto pelo id. Um id que não seja um UUID canônico é
// rejeitado antes de qualquer consulta; a ausência do trayecto é reportada
// como repository.ErrRouteNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Route, error) {
	if !model.IsValidRouteID(id) {
		return nil, model.ErrInvalidRouteID
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteByID remove um trayecto pelo id. Diferente de GetByID, a ausência do
// trayecto é reportada como booleano falso, não como erro.
func (s *Service) DeleteByID(ctx context.Context, id string) (bool, error) {
	if !model.IsValidRouteID(id) {
		return false, model.ErrInvalidRouteID
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("trayecto removido", zap.String("id", id))
	}

	return deleted, nil
}

// Reset remove todos os trayectos
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}

	s.logger.Info("todos os trayectos foram removidos")
	return nil
}
