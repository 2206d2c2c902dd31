package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/flightops/routes-service/internal/app/route"
	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/flightops/routes-service/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteHandler implementa os handlers para gerenciamento de trayectos
type RouteHandler struct {
	routeService *route.Service
	logger       *zap.Logger
}

// NewRouteHandler cria um novo handler de trayectos
func NewRouteHandler(routeService *route.Service, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
		logger:       logger,
	}
}

// routeResponse é a representação de um trayecto no corpo das respostas.
// As datas são serializadas em ISO-8601; updatedAt não é exposto.
type routeResponse struct {
	ID                 string  `json:"id"`
	FlightID           string  `json:"flightId"`
	SourceAirportCode  string  `json:"sourceAirportCode"`
	SourceCountry      string  `json:"sourceCountry"`
	DestinyAirportCode string  `json:"destinyAirportCode"`
	DestinyCountry     string  `json:"destinyCountry"`
	BagCost            float64 `json:"bagCost"`
	PlannedStartDate   string  `json:"plannedStartDate"`
	PlannedEndDate     string  `json:"plannedEndDate"`
	CreatedAt          string  `json:"createdAt"`
}

func toRouteResponse(r *model.Route) routeResponse {
	return routeResponse{
		ID:                 r.ID,
		FlightID:           r.FlightID,
		SourceAirportCode:  r.SourceAirportCode,
		SourceCountry:      r.SourceCountry,
		DestinyAirportCode: r.DestinyAirportCode,
		DestinyCountry:     r.DestinyCountry,
		BagCost:            r.BagCost,
		PlannedStartDate:   r.PlannedStartDate.Format(time.RFC3339),
		PlannedEndDate:     r.PlannedEndDate.Format(time.RFC3339),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}

// Ping responde pong
func (h *RouteHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Reset remove todos os trayectos cadastrados
func (h *RouteHandler) Reset(c *gin.Context) {
	if err := h.routeService.Reset(c.Request.Context()); err != nil {
		h.logger.Error("falha ao limpar trayectos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Todos los datos fueron eliminados"})
}

// CreateRoute cria um novo trayecto
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var input model.CreateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El cuerpo de la solicitud no es un JSON válido"})
		return
	}

	result, err := h.routeService.Create(c.Request.Context(), &input)
	if err != nil {
		var fieldErr *model.FieldError
		switch {
		case errors.As(err, &fieldErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error()})
		case errors.Is(err, model.ErrInvalidDates):
			c.JSON(http.StatusPreconditionFailed, gin.H{"msg": model.ErrInvalidDates.Error()})
		case errors.Is(err, model.ErrFlightIDExists):
			c.JSON(http.StatusPreconditionFailed, gin.H{"msg": model.ErrFlightIDExists.Error()})
		default:
			h.logger.Error("falha ao criar trayecto", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        result.ID,
		"createdAt": result.CreatedAt.Format(time.RFC3339),
	})
}

// ListRoutes lista trayectos, com filtro opcional por flightId
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	flightID := c.Query("flight")

	routes, err := h.routeService.List(c.Request.Context(), flightID)
	if err != nil {
		h.logger.Error("falha ao listar trayectos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		return
	}

	response := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		response = append(response, toRouteResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

// GetRouteByID obtém um trayecto pelo id
func (h *RouteHandler) GetRouteByID(c *gin.Context) {
	id := c.Param("id")

	found, err := h.routeService.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRouteID):
			c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidRouteID.Error()})
		case errors.Is(err, repository.ErrRouteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "El trayecto con ese id no existe"})
		default:
			h.logger.Error("falha ao buscar trayecto", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		}
		return
	}

	c.JSON(http.StatusOK, toRouteResponse(found))
}

// DeleteRoute remove um trayecto pelo id. A ausência do trayecto chega aqui
// como booleano, não como erro, e é convertida no mesmo 404 de GetRouteByID.
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.routeService.DeleteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRouteID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidRouteID.Error()})
			return
		}
		h.logger.Error("falha ao remover trayecto", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocurrió un error en el servidor"})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "El trayecto con ese id no existe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "el trayecto fue eliminado"})
}
