package scheduler

import (
	"sort"

	"github.com/energen/genquote/internal/model"
)

// bundle packs a quarter's occurrences into day visits bounded by the
// crew's daily labor budget. Occurrences are never dropped: a single
// occurrence bigger than the budget still gets its own visit, flagged
// over budget.
func (s *Scheduler) bundle(occs []occurrence, maxDailyHours float64) []model.Visit {
	// Quarterly routine work packs first; bulkier annual services fill
	// in around it.
	sorted := append([]occurrence(nil), occs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return model.NormalizeFrequency(sorted[i].assignment.Frequency) >
			model.NormalizeFrequency(sorted[j].assignment.Frequency)
	})

	var visits []model.Visit
	var current *model.Visit
	currentHours := 0.0

	open := func() {
		visits = append(visits, model.Visit{Day: len(visits) + 1})
		current = &visits[len(visits)-1]
		currentHours = 0
	}
	closeCurrent := func() {
		current = nil
		currentHours = 0
	}

	for _, occ := range sorted {
		heavy := occ.hours >= s.policy.HeavyHoursThreshold

		switch {
		case heavy:
			// Heavy work never shares a dispatch day.
			open()
			appendLine(current, occ)
			currentHours += occ.hours
			current.OverBudget = occ.hours > maxDailyHours
			closeCurrent()

		case occ.assignment.Code == model.ServiceTransferSwitch && !s.canCouple(occ):
			open()
			appendLine(current, occ)
			closeCurrent()

		default:
			if current == nil || currentHours+occ.hours > maxDailyHours {
				if current != nil {
					closeCurrent()
				}
				open()
			}
			appendLine(current, occ)
			currentHours += occ.hours
			if occ.hours > maxDailyHours {
				current.OverBudget = true
				closeCurrent()
			}
		}
	}
	return visits
}

// canCouple reports whether a transfer switch occurrence may ride along
// on another visit. Larger switchgear needs its own dispatch.
func (s *Scheduler) canCouple(occ occurrence) bool {
	return occ.unit.KW <= s.policy.CouplingCeilingKW
}

func appendLine(visit *model.Visit, occ occurrence) {
	visit.Lines = append(visit.Lines, model.VisitLine{
		UnitID:      occ.assignment.UnitID,
		AssetID:     occ.unit.AssetID,
		ServiceCode: occ.assignment.Code,
		ServiceName: occ.assignment.Name,
		Hours:       occ.hours,
		Cost:        occ.cost,
	})
	visit.TotalHours += occ.hours
	visit.TotalCost += occ.cost
}
