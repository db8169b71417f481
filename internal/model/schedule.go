package model

import (
	"time"

	"github.com/google/uuid"
)

type WarningSeverity string

const (
	SeverityInfo    WarningSeverity = "info"
	SeverityWarning WarningSeverity = "warning"
)

// Schedule is the one-year maintenance calendar built for a quote. It is
// recomputed from the quote inputs whenever needed and never persisted.
type Schedule struct {
	StartDate         time.Time         `json:"start_date"`
	FirstServiceMonth time.Month        `json:"first_service_month"`
	Quarters          []Quarter         `json:"quarters"`
	Warnings          []ScheduleWarning `json:"warnings"`
	AnnualTotal       float64           `json:"annual_total"`
}

type Quarter struct {
	Index  int        `json:"index"`
	Label  string     `json:"label"`
	Month  time.Month `json:"month"`
	Visits []Visit    `json:"visits"`
	Total  float64    `json:"total"`
}

// Visit is one crew dispatch day. Date stays nil (rendered as TBD) until
// dispatch confirms weather; Day orders visits within the quarter.
type Visit struct {
	Day        int         `json:"day"`
	Date       *time.Time  `json:"date,omitempty"`
	Lines      []VisitLine `json:"lines"`
	TotalHours float64     `json:"total_hours"`
	TotalCost  float64     `json:"total_cost"`
	OverBudget bool        `json:"over_budget,omitempty"`
}

type VisitLine struct {
	UnitID      uuid.UUID   `json:"unit_id"`
	AssetID     string      `json:"asset_id"`
	ServiceCode ServiceCode `json:"service_code"`
	ServiceName string      `json:"service_name"`
	Hours       float64     `json:"hours"`
	Cost        float64     `json:"cost"`
}

type ScheduleWarning struct {
	Quarter        int             `json:"quarter"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Recommendation string          `json:"recommendation,omitempty"`
}

func (q Quarter) IsWinter(winterMonths []time.Month) bool {
	for _, m := range winterMonths {
		if q.Month == m {
			return true
		}
	}
	return false
}
