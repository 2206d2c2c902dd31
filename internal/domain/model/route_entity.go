package model

import (
	"time"
)

// RouteEntity é a representação de banco de dados de um trayecto
type RouteEntity struct {
	ID                 string    `gorm:"primaryKey"`
	FlightID           string    `gorm:"column:flight_id;index;not null"`
	SourceAirportCode  string    `gorm:"not null"`
	SourceCountry      string    `gorm:"not null"`
	DestinyAirportCode string    `gorm:"not null"`
	DestinyCountry     string    `gorm:"not null"`
	BagCost            float64   `gorm:"not null"`
	PlannedStartDate   time.Time `gorm:"not null"`
	PlannedEndDate     time.Time `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName define o nome da tabela
func (RouteEntity) TableName() string {
	return "route"
}
