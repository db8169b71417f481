package scheduler

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energen/genquote/internal/model"
)

func testScheduler() *Scheduler {
	return New(DefaultPolicy(), DefaultLaborHourTable())
}

func testContract(start time.Time) model.Contract {
	return model.Contract{
		StartDate:      start,
		CrewSize:       2,
		HoursPerTech:   8,
		WeatherProfile: "temperate",
	}
}

func testUnit(kw float64) model.Unit {
	return model.Unit{ID: uuid.New(), AssetID: "GEN-01", KW: kw, FuelType: "Diesel"}
}

func assignment(unit model.Unit, code model.ServiceCode, freq int, cost float64) model.ServiceAssignment {
	def, _ := model.LookupService(code)
	return model.ServiceAssignment{
		UnitID:         unit.ID,
		Code:           code,
		Name:           def.Name,
		Frequency:      freq,
		OccurrenceCost: cost,
	}
}

// quartersContaining returns the quarter indexes in which the service
// code appears anywhere in the schedule.
func quartersContaining(sched model.Schedule, code model.ServiceCode) []int {
	var idx []int
	for _, q := range sched.Quarters {
		found := false
		for _, v := range q.Visits {
			for _, line := range v.Lines {
				if line.ServiceCode == code {
					found = true
				}
			}
		}
		if found {
			idx = append(idx, q.Index)
		}
	}
	return idx
}

func TestFrequencyPlacement(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
		assignment(unit, model.ServiceOilFilter, 2, 600),
		assignment(unit, model.ServiceCoolant, 1, 400),
	})

	assert.Equal(t, []int{1, 2, 3, 4}, quartersContaining(sched, model.ServiceInspection))
	assert.Equal(t, []int{1, 3}, quartersContaining(sched, model.ServiceOilFilter))
	assert.Equal(t, []int{1}, quartersContaining(sched, model.ServiceCoolant))
}

func TestUnknownFrequencyDefaultsToAnnual(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceCoolant, 7, 400),
	})
	assert.Equal(t, []int{1}, quartersContaining(sched, model.ServiceCoolant))
}

func TestSumProperty(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	assignments := []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
		assignment(unit, model.ServiceOilFilter, 2, 600),
		assignment(unit, model.ServiceLoadBank, 1, 1200),
	}
	sched := s.Build(testContract(start), []model.Unit{unit}, assignments)

	want := 0.0
	for _, a := range assignments {
		want += a.OccurrenceCost * float64(model.NormalizeFrequency(a.Frequency))
	}
	got := 0.0
	for _, q := range sched.Quarters {
		got += q.Total
	}
	assert.InDelta(t, want, got, 1e-9)
	assert.InDelta(t, want, sched.AnnualTotal, 1e-9)
}

func TestQuarterlyCostExample(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
	})
	for _, q := range sched.Quarters {
		assert.InDelta(t, 250.0, q.Total, 1e-9, "quarter %d", q.Index)
	}
	assert.InDelta(t, 1000.0, sched.AnnualTotal, 1e-9)
}

func TestQuarterlyPlusSemiAnnualExample(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
		assignment(unit, model.ServiceOilFilter, 2, 600),
	})

	assert.InDelta(t, 850.0, sched.Quarters[0].Total, 1e-9)
	assert.InDelta(t, 250.0, sched.Quarters[1].Total, 1e-9)
	assert.InDelta(t, 850.0, sched.Quarters[2].Total, 1e-9)
	assert.InDelta(t, 250.0, sched.Quarters[3].Total, 1e-9)
}

func TestMissingCostKeepsOccurrenceVisible(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, -1),
	})
	assert.Equal(t, []int{1, 2, 3, 4}, quartersContaining(sched, model.ServiceInspection))
	assert.Zero(t, sched.AnnualTotal)
}

func TestIdempotence(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	assignments := []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
		assignment(unit, model.ServiceLoadBank, 2, 1200),
		assignment(unit, model.ServiceTransferSwitch, 1, 150),
	}
	first := s.Build(testContract(start), []model.Unit{unit}, assignments)
	second := s.Build(testContract(start), []model.Unit{unit}, assignments)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestZeroStartDateDefaultsToNow(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)

	sched := s.Build(testContract(time.Time{}), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 250),
	})
	assert.False(t, sched.StartDate.IsZero())
	require.Len(t, sched.Quarters, 4)
}

func TestWeatherAvoidanceSemiAnnual(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	// November start: quarters fall in DEC, MAR, JUN, SEP. Quarter 1 is
	// winter under the temperate profile.
	start := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceLoadBank, 2, 1200),
	})

	assert.Equal(t, []int{2, 3}, quartersContaining(sched, model.ServiceLoadBank))
	for _, w := range sched.Warnings {
		assert.NotEqual(t, model.SeverityWarning, w.Severity, "unexpected warning: %s", w.Message)
	}
}

func TestWeatherAvoidanceAnnualPicksFirstMildQuarter(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceLoadBank, 1, 1200),
	})
	assert.Equal(t, []int{2}, quartersContaining(sched, model.ServiceLoadBank))
}

func TestWeatherForcedWinterPlacement(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	// Quarterly load bank cannot avoid the DEC quarter.
	start := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceLoadBank, 4, 1200),
	})

	assert.Equal(t, []int{1, 2, 3, 4}, quartersContaining(sched, model.ServiceLoadBank))

	found := false
	for _, w := range sched.Warnings {
		if w.Severity == model.SeverityWarning && w.Quarter == 1 {
			found = true
		}
	}
	assert.True(t, found, "expected forced winter placement warning")
}

func TestWeatherDegenerateAllWinter(t *testing.T) {
	policy := DefaultPolicy()
	policy.WeatherProfiles["arctic"] = []time.Month{
		time.January, time.February, time.March, time.April, time.May, time.June,
		time.July, time.August, time.September, time.October, time.November, time.December,
	}
	s := New(policy, DefaultLaborHourTable())
	unit := testUnit(300)
	contract := testContract(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	contract.WeatherProfile = "arctic"

	sched := s.Build(contract, []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceLoadBank, 2, 1200),
	})

	// Best effort: falls back to the default {1,3} placement and warns.
	assert.Equal(t, []int{1, 3}, quartersContaining(sched, model.ServiceLoadBank))

	warned := false
	for _, w := range sched.Warnings {
		if w.Severity == model.SeverityWarning {
			warned = true
		}
	}
	assert.True(t, warned, "degenerate all-winter case must carry a warning")
}

func TestVisitPackingRespectsDailyBudget(t *testing.T) {
	s := testScheduler()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	contract := model.Contract{
		StartDate:      start,
		CrewSize:       1,
		HoursPerTech:   4,
		WeatherProfile: "temperate",
	}

	units := []model.Unit{testUnit(100), testUnit(100), testUnit(100), testUnit(100)}
	var assignments []model.ServiceAssignment
	for _, u := range units {
		assignments = append(assignments, assignment(u, model.ServiceInspection, 4, 250))
	}
	sched := s.Build(contract, units, assignments)

	for _, q := range sched.Quarters {
		require.NotEmpty(t, q.Visits)
		for _, v := range q.Visits {
			if !v.OverBudget {
				assert.LessOrEqual(t, v.TotalHours, contract.MaxDailyHours())
			}
		}
	}
}

func TestOversizedOccurrenceFlaggedNotDropped(t *testing.T) {
	s := testScheduler()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	contract := model.Contract{
		StartDate:      start,
		CrewSize:       1,
		HoursPerTech:   2,
		WeatherProfile: "temperate",
	}
	unit := testUnit(2000) // 8h oil service against a 2h budget

	sched := s.Build(contract, []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceOilFilter, 1, 900),
	})

	q1 := sched.Quarters[0]
	require.Len(t, q1.Visits, 1)
	assert.True(t, q1.Visits[0].OverBudget)
	require.Len(t, q1.Visits[0].Lines, 1)
	assert.InDelta(t, 900.0, q1.Total, 1e-9)
}

func TestHeavyServicesNeverShareAVisit(t *testing.T) {
	s := testScheduler()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	unit := testUnit(2000) // oil 8h and load bank 8h are both heavy here

	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceOilFilter, 1, 900),
		assignment(unit, model.ServiceLoadBank, 1, 2500),
	})

	for _, q := range sched.Quarters {
		for _, v := range q.Visits {
			heavies := 0
			for _, line := range v.Lines {
				if line.Hours >= s.policy.HeavyHoursThreshold {
					heavies++
				}
			}
			assert.LessOrEqual(t, heavies, 1, "quarter %d packs two heavy services in one visit", q.Index)
		}
	}
}

func TestTransferSwitchCoupling(t *testing.T) {
	s := testScheduler()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	small := testUnit(300)
	sched := s.Build(testContract(start), []model.Unit{small}, []model.ServiceAssignment{
		assignment(small, model.ServiceInspection, 1, 250),
		assignment(small, model.ServiceTransferSwitch, 1, 150),
	})
	require.Len(t, sched.Quarters[0].Visits, 1, "small unit switch work should couple")

	large := testUnit(900) // above the 500 kW coupling ceiling
	sched = s.Build(testContract(start), []model.Unit{large}, []model.ServiceAssignment{
		assignment(large, model.ServiceInspection, 1, 250),
		assignment(large, model.ServiceTransferSwitch, 1, 150),
	})
	require.Len(t, sched.Quarters[0].Visits, 2, "large unit switch work needs its own visit")
}

func TestBalanceCheckFlagsConcentration(t *testing.T) {
	s := testScheduler()
	unit := testUnit(300)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	// One expensive annual service concentrates everything in quarter 1.
	sched := s.Build(testContract(start), []model.Unit{unit}, []model.ServiceAssignment{
		assignment(unit, model.ServiceInspection, 4, 100),
		assignment(unit, model.ServiceCoolant, 1, 5000),
	})

	found := false
	for _, w := range sched.Warnings {
		if w.Severity == model.SeverityInfo && w.Quarter == 1 {
			found = true
		}
	}
	assert.True(t, found, "expected cash-flow concentration note for quarter 1")
}
