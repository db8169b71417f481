package scheduler

import (
	"fmt"

	"github.com/energen/genquote/internal/model"
)

// Bracket is a non-overlapping kW range keying the labor hour lookup.
// MaxKW of 0 marks the open-ended top bracket.
type Bracket struct {
	Label string
	MinKW float64
	MaxKW float64
}

var capacityBrackets = []Bracket{
	{Label: "2-14", MinKW: 2, MaxKW: 14},
	{Label: "15-30", MinKW: 15, MaxKW: 30},
	{Label: "35-150", MinKW: 35, MaxKW: 150},
	{Label: "151-250", MinKW: 151, MaxKW: 250},
	{Label: "251-400", MinKW: 251, MaxKW: 400},
	{Label: "401-500", MinKW: 401, MaxKW: 500},
	{Label: "501-670", MinKW: 501, MaxKW: 670},
	{Label: "671-1050", MinKW: 671, MaxKW: 1050},
	{Label: "1051-1500", MinKW: 1051, MaxKW: 1500},
	{Label: "1501+", MinKW: 1501, MaxKW: 0},
}

// LaborHourTable maps (service code, capacity bracket) to the estimated
// labor hours for one occurrence of the service on one unit. Tables are
// immutable after construction and injected into the scheduler.
type LaborHourTable struct {
	brackets     []Bracket
	hours        map[model.ServiceCode][]float64
	defaultHours float64
}

func NewLaborHourTable(hours map[model.ServiceCode][]float64, defaultHours float64) (*LaborHourTable, error) {
	copied := make(map[model.ServiceCode][]float64, len(hours))
	for code, row := range hours {
		if len(row) != len(capacityBrackets) {
			return nil, fmt.Errorf("service %s: expected %d bracket entries, got %d", code, len(capacityBrackets), len(row))
		}
		copied[code] = append([]float64(nil), row...)
	}
	return &LaborHourTable{
		brackets:     capacityBrackets,
		hours:        copied,
		defaultHours: defaultHours,
	}, nil
}

// DefaultLaborHourTable returns the production table. Fluid analysis is
// lab work only and carries zero field hours in every bracket.
func DefaultLaborHourTable() *LaborHourTable {
	table, err := NewLaborHourTable(map[model.ServiceCode][]float64{
		model.ServiceInspection:     {1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 5.0, 6.0, 7.0},
		model.ServiceOilFilter:      {1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.5, 6.5, 8.0},
		model.ServiceCoolant:        {1.0, 1.5, 2.0, 2.5, 3.0, 3.0, 3.5, 4.0, 5.0, 6.0},
		model.ServiceFluidAnalysis:  {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		model.ServiceLoadBank:       {2.5, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0, 6.0, 7.0, 8.0},
		model.ServiceTransferSwitch: {0.5, 0.5, 1.0, 1.0, 1.5, 1.5, 2.0, 2.0, 2.5, 3.0},
	}, 2.0)
	if err != nil {
		panic(err)
	}
	return table
}

// BracketFor returns the first bracket whose upper bound covers the
// capacity. Capacities outside the defined ranges clamp to the nearest
// end bracket.
func (t *LaborHourTable) BracketFor(kw float64) (int, Bracket) {
	for i, b := range t.brackets {
		if b.MaxKW == 0 || kw <= b.MaxKW {
			return i, b
		}
	}
	last := len(t.brackets) - 1
	return last, t.brackets[last]
}

// Hours looks up the estimated labor hours for one occurrence. Unknown
// service codes (CUSTOM included) use the flat default.
func (t *LaborHourTable) Hours(code model.ServiceCode, kw float64) float64 {
	row, ok := t.hours[code]
	if !ok {
		return t.defaultHours
	}
	idx, _ := t.BracketFor(kw)
	return row[idx]
}
