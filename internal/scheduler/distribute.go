package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/energen/genquote/internal/model"
)

// occurrence is one scheduled performance of a service on one unit within
// one quarter.
type occurrence struct {
	unit       model.Unit
	assignment model.ServiceAssignment
	hours      float64
	cost       float64
}

// distribute assigns every (unit, service) occurrence to quarters per its
// contracted frequency, steering weather-sensitive work away from winter.
// It never drops an occurrence; impossible weather constraints degrade to
// the default placement with a warning.
func (s *Scheduler) distribute(
	quarters []model.Quarter,
	units map[string]model.Unit,
	assignments []model.ServiceAssignment,
	winter []time.Month,
) (map[int][]occurrence, []model.ScheduleWarning) {
	placed := make(map[int][]occurrence, len(quarters))
	var warnings []model.ScheduleWarning

	for _, a := range assignments {
		unit, ok := units[a.UnitID.String()]
		if !ok {
			continue
		}
		freq := model.NormalizeFrequency(a.Frequency)

		var set []int
		if a.Code.WeatherSensitive() {
			var warning *model.ScheduleWarning
			set, warning = weatherQuarterSet(freq, quarters, winter)
			if warning != nil {
				warning.Message = fmt.Sprintf("%s for unit %s: %s", a.Name, unit.AssetID, warning.Message)
				warnings = append(warnings, *warning)
			}
		} else {
			set = defaultQuarterSet(freq)
		}

		cost := a.OccurrenceCost
		if cost < 0 {
			cost = 0
		}
		hours := s.table.Hours(a.Code, unit.KW)
		for _, idx := range set {
			placed[idx] = append(placed[idx], occurrence{
				unit:       unit,
				assignment: a,
				hours:      hours,
				cost:       cost,
			})
		}
	}
	return placed, warnings
}

// defaultQuarterSet is the placement for services with no weather
// constraint: quarterly everywhere, semi-annual in 1 and 3, annual in 1.
func defaultQuarterSet(freq int) []int {
	switch freq {
	case 4:
		return []int{1, 2, 3, 4}
	case 2:
		return []int{1, 3}
	default:
		return []int{1}
	}
}

// weatherQuarterSet picks k quarters for a weather-sensitive service,
// preferring non-winter quarters and keeping the default {1,3} spacing
// for semi-annual work when possible.
func weatherQuarterSet(k int, quarters []model.Quarter, winter []time.Month) ([]int, *model.ScheduleWarning) {
	var nonWinter, winterIdx []int
	for _, q := range quarters {
		if q.IsWinter(winter) {
			winterIdx = append(winterIdx, q.Index)
		} else {
			nonWinter = append(nonWinter, q.Index)
		}
	}

	switch {
	case len(nonWinter) >= k:
		return pickNonWinter(k, nonWinter), nil

	case len(nonWinter) > 0:
		// Not enough mild quarters: fill what we can, then take the
		// earliest winter quarters to honor the contracted count.
		set := append([]int(nil), nonWinter...)
		forced := winterIdx[:k-len(nonWinter)]
		set = append(set, forced...)
		return set, &model.ScheduleWarning{
			Quarter:        forced[0],
			Severity:       model.SeverityWarning,
			Message:        "contracted frequency forces placement in a winter quarter",
			Recommendation: "confirm site conditions before dispatching weather-sensitive testing",
		}

	default:
		// Every quarter is winter at this site. Best effort only.
		return defaultQuarterSet(k), &model.ScheduleWarning{
			Quarter:        1,
			Severity:       model.SeverityWarning,
			Message:        "weather avoidance could not be honored, all quarters fall in winter",
			Recommendation: "review the site weather profile or reschedule testing manually",
		}
	}
}

func pickNonWinter(k int, nonWinter []int) []int {
	if k == 2 {
		// Keep the semi-annual {1,3} rhythm when both are mild, else
		// substitute the earliest mild quarter for the winter member.
		set := make([]int, 0, 2)
		for _, want := range []int{1, 3} {
			if containsInt(nonWinter, want) {
				set = append(set, want)
			}
		}
		for _, idx := range nonWinter {
			if len(set) == 2 {
				break
			}
			if !containsInt(set, idx) {
				set = append(set, idx)
			}
		}
		sort.Ints(set)
		return set
	}
	return append([]int(nil), nonWinter[:k]...)
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
