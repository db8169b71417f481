package scheduler

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/energen/genquote/internal/model"
)

// balanceFactor flags a quarter as a cash-flow concentration when its
// total exceeds this multiple of the mean quarter total.
const balanceFactor = 1.5

// validate runs the post-hoc checks over a finished schedule. It only
// appends warnings; the schedule itself is never mutated and there is no
// error severity.
func (s *Scheduler) validate(sched model.Schedule, winter []time.Month) []model.ScheduleWarning {
	var warnings []model.ScheduleWarning
	warnings = append(warnings, weatherCheck(sched, winter)...)
	warnings = append(warnings, balanceCheck(sched)...)
	return warnings
}

// weatherCheck flags weather-sensitive services that ended up in winter
// quarters despite the distributor's avoidance.
func weatherCheck(sched model.Schedule, winter []time.Month) []model.ScheduleWarning {
	var warnings []model.ScheduleWarning
	for _, q := range sched.Quarters {
		if !q.IsWinter(winter) {
			continue
		}
		for _, v := range q.Visits {
			for _, line := range v.Lines {
				if !line.ServiceCode.WeatherSensitive() {
					continue
				}
				warnings = append(warnings, model.ScheduleWarning{
					Quarter:  q.Index,
					Severity: model.SeverityWarning,
					Message: fmt.Sprintf("%s scheduled for unit %s in winter quarter %s",
						line.ServiceName, line.AssetID, q.Label),
					Recommendation: "move the test to a milder quarter if the contract allows",
				})
			}
		}
	}
	return warnings
}

// balanceCheck notes quarters whose billing concentrates too much of the
// annual total in one invoice.
func balanceCheck(sched model.Schedule) []model.ScheduleWarning {
	totals := make([]float64, len(sched.Quarters))
	for i, q := range sched.Quarters {
		totals[i] = q.Total
	}
	mean := stat.Mean(totals, nil)
	if mean <= 0 {
		return nil
	}

	var warnings []model.ScheduleWarning
	for _, q := range sched.Quarters {
		if q.Total <= balanceFactor*mean {
			continue
		}
		warnings = append(warnings, model.ScheduleWarning{
			Quarter:  q.Index,
			Severity: model.SeverityInfo,
			Message: fmt.Sprintf("quarter %s bills %.2f against a quarterly mean of %.2f",
				q.Label, q.Total, mean),
			Recommendation: "consider spreading annual services across quarters to even out cash flow",
		})
	}
	return warnings
}
