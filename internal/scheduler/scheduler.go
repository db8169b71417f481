package scheduler

import (
	"time"

	"github.com/energen/genquote/internal/model"
)

// Scheduler turns a maintenance contract into a one-year, quarter
// partitioned visit calendar. It is a pure computation: no I/O, no shared
// state, identical inputs always produce an identical schedule.
type Scheduler struct {
	policy Policy
	table  *LaborHourTable
}

func New(policy Policy, table *LaborHourTable) *Scheduler {
	return &Scheduler{policy: policy, table: table}
}

// Build computes the schedule for one contract. Business data out of
// range never fails the build; it is clamped or defaulted and surfaced as
// warnings. Callers are expected to have validated structural input
// (non-empty fleet, positive capacities) beforehand.
func (s *Scheduler) Build(contract model.Contract, units []model.Unit, assignments []model.ServiceAssignment) model.Schedule {
	start := contract.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	winter := s.policy.WinterFor(contract.WeatherProfile)
	quarters := buildQuarters(start)

	unitIndex := make(map[string]model.Unit, len(units))
	for _, u := range units {
		unitIndex[u.ID.String()] = u
	}

	placed, warnings := s.distribute(quarters, unitIndex, assignments, winter)

	maxDaily := contract.MaxDailyHours()
	annual := 0.0
	for i := range quarters {
		quarters[i].Visits = s.bundle(placed[quarters[i].Index], maxDaily)
		for _, v := range quarters[i].Visits {
			quarters[i].Total += v.TotalCost
		}
		annual += quarters[i].Total
	}

	sched := model.Schedule{
		StartDate:         start,
		FirstServiceMonth: firstServiceMonth(start),
		Quarters:          quarters,
		Warnings:          warnings,
		AnnualTotal:       annual,
	}
	sched.Warnings = append(sched.Warnings, s.validate(sched, winter)...)
	return sched
}
