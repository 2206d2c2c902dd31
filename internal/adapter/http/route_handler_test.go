package http_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	adapterhttp "github.com/flightops/routes-service/internal/adapter/http"
	"github.com/flightops/routes-service/internal/app/route"
	"github.com/flightops/routes-service/internal/domain/model"
	"github.com/flightops/routes-service/internal/domain/repository"
	"github.com/flightops/routes-service/internal/infra/middleware"
	"github.com/flightops/routes-service/internal/mocks"
	"github.com/flightops/routes-service/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupRouter wires the handler, the auth middleware and the route
// registration the same way the application does.
func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockRouteRepository, *mocks.MockTokenValidator) {
	logger := testutils.TestLogger(t)

	mockRepo := new(mocks.MockRouteRepository)
	mockValidator := new(mocks.MockTokenValidator)

	service := route.NewService(mockRepo, logger)
	handler := adapterhttp.NewRouteHandler(service, logger)
	authMw := middleware.NewAuthMiddleware(mockValidator, logger)

	router := testutils.SetupTestRouter()

	public := router.Group("/routes")
	{
		public.GET("/ping", handler.Ping)
		public.POST("/reset", handler.Reset)
	}

	protected := router.Group("/routes")
	protected.Use(authMw.Authenticate)
	{
		protected.POST("", handler.CreateRoute)
		protected.GET("", handler.ListRoutes)
		protected.GET("/:id", handler.GetRouteByID)
		protected.DELETE("/:id", handler.DeleteRoute)
	}

	return router, mockRepo, mockValidator
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"flightId":           "AV-205",
		"sourceAirportCode":  "BOG",
		"sourceCountry":      "Colombia",
		"destinyAirportCode": "LIM",
		"destinyCountry":     "Peru",
		"bagCost":            35.5,
		"plannedStartDate":   time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
		"plannedEndDate":     time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
	}
}

func TestPing(t *testing.T) {
	router, _, _ := setupRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes/ping", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "pong", resp.Body.String())
}

func TestAuthentication(t *testing.T) {
	t.Run("rejects requests without Authorization header", func(t *testing.T) {
		router, _, mockValidator := setupRouter(t)

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "No hay token en la solicitud", body["message"])

		mockValidator.AssertNotCalled(t, "IsValid")
	})

	t.Run("rejects headers without the Bearer prefix", func(t *testing.T) {
		router, _, mockValidator := setupRouter(t)

		headers := map[string]string{"Authorization": "Token abc"}
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, headers)

		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
		mockValidator.AssertNotCalled(t, "IsValid")
	})

	t.Run("rejects tokens the user service does not accept", func(t *testing.T) {
		router, _, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "expired").Return(false, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, bearer("expired"))

		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "El token no es válido o está vencido.", body["message"])
	})

	t.Run("maps validation transport failures to the generic 500", func(t *testing.T) {
		router, _, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "any").
			Return(false, errors.New("connection refused")).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, bearer("any"))

		testutils.RequireHTTPStatus(t, resp, http.StatusInternalServerError)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "Ocurrió un error en el servidor", body["error"])
	})
}

func TestCreateRoute(t *testing.T) {
	t.Run("creates a route", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindByFlightID", mock.Anything, "AV-205").
			Return([]*model.Route{}, nil).Once()
		mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.Route")).
			Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes", createBody(), bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)

		parsed, err := uuid.Parse(body["id"])
		require.NoError(t, err)
		assert.Equal(t, parsed.String(), body["id"])

		_, err = time.Parse(time.RFC3339, body["createdAt"])
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a body with a missing field", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()

		body := createBody()
		delete(body, "flightId")

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes", body, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var result map[string]string
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "El campo 'flightId' es obligatorio", result["error"])

		mockRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("rejects a start date in the past", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()

		body := createBody()
		body["plannedStartDate"] = time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes", body, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusPreconditionFailed)

		var result map[string]string
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "Las fechas del trayecto no son válidas", result["msg"])

		mockRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("rejects a duplicated flightId", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindByFlightID", mock.Anything, "AV-205").
			Return([]*model.Route{{ID: uuid.NewString(), FlightID: "AV-205"}}, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes", createBody(), bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusPreconditionFailed)

		var result map[string]string
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "El flightId ya existe", result["msg"])

		mockRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("rejects a malformed JSON body", func(t *testing.T) {
		router, _, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes", "{not json", bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}

func TestListRoutes(t *testing.T) {
	t.Run("returns routes in store order", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
		stored := []*model.Route{
			{ID: uuid.NewString(), FlightID: "AV-205", SourceAirportCode: "BOG", PlannedStartDate: start, PlannedEndDate: start.Add(4 * time.Hour), CreatedAt: start.Add(-time.Hour)},
			{ID: uuid.NewString(), FlightID: "LA-330", SourceAirportCode: "LIM", PlannedStartDate: start, PlannedEndDate: start.Add(6 * time.Hour), CreatedAt: start.Add(-time.Hour)},
		}

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindAll", mock.Anything).Return(stored, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body []map[string]interface{}
		testutils.ParseResponse(t, resp, &body)

		require.Len(t, body, 2)
		assert.Equal(t, "AV-205", body[0]["flightId"])
		assert.Equal(t, "LA-330", body[1]["flightId"])
		assert.Equal(t, "2030-05-01T10:00:00Z", body[0]["plannedStartDate"])
	})

	t.Run("filters by the flight query parameter", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		stored := []*model.Route{{ID: uuid.NewString(), FlightID: "AV-205"}}

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindByFlightID", mock.Anything, "AV-205").Return(stored, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes?flight=AV-205", nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body []map[string]interface{}
		testutils.ParseResponse(t, resp, &body)

		require.Len(t, body, 1)
		assert.Equal(t, "AV-205", body[0]["flightId"])
		mockRepo.AssertNotCalled(t, "FindAll")
	})

	t.Run("maps repository errors to the generic 500", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindAll", mock.Anything).Return(nil, errors.New("database error")).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes", nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusInternalServerError)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "Ocurrió un error en el servidor", body["error"])
	})
}

func TestGetRouteByID(t *testing.T) {
	t.Run("rejects a non-UUID id", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes/not-a-uuid", nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "El id no es un valor string con formato uuid", body["error"])

		mockRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("reports an absent route as 404", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		id := uuid.NewString()
		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindByID", mock.Anything, id).
			Return(nil, repository.ErrRouteNotFound).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes/"+id, nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "El trayecto con ese id no existe", body["error"])
	})

	t.Run("returns the stored route", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		id := uuid.NewString()
		start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
		stored := &model.Route{
			ID:                 id,
			FlightID:           "AV-205",
			SourceAirportCode:  "BOG",
			SourceCountry:      "Colombia",
			DestinyAirportCode: "LIM",
			DestinyCountry:     "Peru",
			BagCost:            35.5,
			PlannedStartDate:   start,
			PlannedEndDate:     start.Add(4 * time.Hour),
			CreatedAt:          start.Add(-time.Hour),
		}

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/routes/"+id, nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body map[string]interface{}
		testutils.ParseResponse(t, resp, &body)

		assert.Equal(t, id, body["id"])
		assert.Equal(t, "AV-205", body["flightId"])
		assert.Equal(t, "BOG", body["sourceAirportCode"])
		assert.Equal(t, "Colombia", body["sourceCountry"])
		assert.Equal(t, "LIM", body["destinyAirportCode"])
		assert.Equal(t, "Peru", body["destinyCountry"])
		assert.Equal(t, 35.5, body["bagCost"])
		assert.Equal(t, "2030-05-01T10:00:00Z", body["plannedStartDate"])
		assert.Equal(t, "2030-05-01T14:00:00Z", body["plannedEndDate"])
		assert.Equal(t, "2030-05-01T09:00:00Z", body["createdAt"])
	})
}

func TestDeleteRoute(t *testing.T) {
	t.Run("rejects a non-UUID id", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/routes/not-a-uuid", nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		mockRepo.AssertNotCalled(t, "DeleteByID")
	})

	t.Run("reports an absent route as 404", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		id := uuid.NewString()
		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("DeleteByID", mock.Anything, id).Return(false, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/routes/"+id, nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "El trayecto con ese id no existe", body["error"])
	})

	t.Run("deletes an existing route", func(t *testing.T) {
		router, mockRepo, mockValidator := setupRouter(t)

		id := uuid.NewString()
		mockValidator.On("IsValid", mock.Anything, "tok").Return(true, nil).Once()
		mockRepo.On("DeleteByID", mock.Anything, id).Return(true, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/routes/"+id, nil, bearer("tok"))

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "el trayecto fue eliminado", body["msg"])
	})
}

func TestReset(t *testing.T) {
	t.Run("reset is idempotent", func(t *testing.T) {
		router, mockRepo, _ := setupRouter(t)

		mockRepo.On("DeleteAll", mock.Anything).Return(nil).Twice()

		for i := 0; i < 2; i++ {
			resp := testutils.MakeRequest(t, router, http.MethodPost, "/routes/reset", nil, nil)

			testutils.RequireHTTPStatus(t, resp, http.StatusOK)

			var body map[string]string
			testutils.ParseResponse(t, resp, &body)
			assert.Equal(t, "Todos los datos fueron eliminados", body["msg"])
		}

		mockRepo.AssertExpectations(t)
	})
}
