package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Route é a representação de domínio de um trayecto (trecho de voo)
type Route struct {
	ID                 string    // UUID gerado pelo servidor
	FlightID           string    // Identificador externo do voo
	SourceAirportCode  string    // Código do aeroporto de origem
	SourceCountry      string    // País de origem
	DestinyAirportCode string    // Código do aeroporto de destino
	DestinyCountry     string    // País de destino
	BagCost            float64   // Custo da bagagem
	PlannedStartDate   time.Time // Início planejado (UTC)
	PlannedEndDate     time.Time // Fim planejado (UTC)
	CreatedAt          time.Time // Data de criação
	UpdatedAt          time.Time // Data de atualização
}

// Mensagens voltadas ao usuário. Fazem parte do contrato da API e são
// verificadas pelos consumidores, portanto não devem ser alteradas.
var (
	// ErrInvalidDates indica violação das regras de datas do trayecto
	ErrInvalidDates = errors.New("Las fechas del trayecto no son válidas")

	// ErrFlightIDExists indica que já existe um trayecto com o mesmo flightId
	ErrFlightIDExists = errors.New("El flightId ya existe")

	// ErrInvalidRouteID indica que o id informado não é um UUID canônico
	ErrInvalidRouteID = errors.New("El id no es un valor string con formato uuid")
)

// FieldError descreve um problema em um campo específico da entrada
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// MissingFieldError cria o erro de campo obrigatório ausente
func MissingFieldError(field string) *FieldError {
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf("El campo '%s' es obligatorio", field),
	}
}

// InvalidDateFieldError cria o erro de campo de data mal formado
func InvalidDateFieldError(field string) *FieldError {
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf("El campo '%s' no es una fecha ISO-8601 válida", field),
	}
}

// CreateRouteInput é a entrada de criação de trayecto. Os campos são ponteiros
// para distinguir "campo ausente" de "valor zero" na requisição JSON.
type CreateRouteInput struct {
	FlightID           *string  `json:"flightId"`
	SourceAirportCode  *string  `json:"sourceAirportCode"`
	SourceCountry      *string  `json:"sourceCountry"`
	DestinyAirportCode *string  `json:"destinyAirportCode"`
	DestinyCountry     *string  `json:"destinyCountry"`
	BagCost            *float64 `json:"bagCost"`
	PlannedStartDate   *string  `json:"plannedStartDate"`
	PlannedEndDate     *string  `json:"plannedEndDate"`
}

// Validate verifica os campos obrigatórios na ordem fixa do contrato e
// reporta o primeiro ausente.
func (in *CreateRouteInput) Validate() error {
	required := []struct {
		name    string
		present bool
	}{
		{"flightId", in.FlightID != nil},
		{"sourceAirportCode", in.SourceAirportCode != nil},
		{"sourceCountry", in.SourceCountry != nil},
		{"destinyAirportCode", in.DestinyAirportCode != nil},
		{"destinyCountry", in.DestinyCountry != nil},
		{"bagCost", in.BagCost != nil},
		{"plannedStartDate", in.PlannedStartDate != nil},
		{"plannedEndDate", in.PlannedEndDate != nil},
	}

	for _, field := range required {
		if !field.present {
			return MissingFieldError(field.name)
		}
	}

	return nil
}

// PlannedWindow interpreta as datas planejadas como ISO-8601 e as normaliza
// para UTC. Deve ser chamado após Validate.
func (in *CreateRouteInput) PlannedWindow() (start, end time.Time, err error) {
	start, ok := parseISODate(*in.PlannedStartDate)
	if !ok {
		return time.Time{}, time.Time{}, InvalidDateFieldError("plannedStartDate")
	}

	end, ok = parseISODate(*in.PlannedEndDate)
	if !ok {
		return time.Time{}, time.Time{}, InvalidDateFieldError("plannedEndDate")
	}

	return start, end, nil
}

// parseISODate aceita timestamps ISO-8601 com ou sem offset; valores sem
// offset são interpretados como UTC.
func parseISODate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// IsValidRouteID verifica se o id é um UUID canônico. O parse aceita variantes
// (chaves, prefixo urn), então o resultado é comparado com a forma canônica.
func IsValidRouteID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.String() == id
}
