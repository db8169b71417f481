package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract carries the scheduling terms of a maintenance agreement.
// MaxDailyHours is the crew's labor budget for a single visit day.
type Contract struct {
	StartDate      time.Time
	CrewSize       int
	HoursPerTech   float64
	WeatherProfile string
}

func (c Contract) MaxDailyHours() float64 {
	return float64(c.CrewSize) * c.HoursPerTech
}

type Unit struct {
	ID           uuid.UUID
	AssetID      string
	Manufacturer string
	Model        string
	SerialNumber string
	Building     string
	KW           float64
	FuelType     string
}

// ServiceAssignment is one selected unit/service pair at quote time.
// OccurrenceCost comes from the pricing engine and covers a single
// performance of the service; the scheduler treats it as opaque.
type ServiceAssignment struct {
	UnitID         uuid.UUID
	Code           ServiceCode
	Name           string
	Frequency      int
	OccurrenceCost float64
}
