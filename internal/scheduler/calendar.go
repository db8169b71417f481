package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/energen/genquote/internal/model"
)

// firstServiceMonth is the month after the contract start, wrapped past
// December into January.
func firstServiceMonth(start time.Time) time.Month {
	return wrapMonth(int(start.Month()) + 1)
}

// buildQuarters derives the four quarter anchors of the contract year.
// Quarter months advance by three from the first service month.
func buildQuarters(start time.Time) []model.Quarter {
	first := int(firstServiceMonth(start))
	quarters := make([]model.Quarter, 0, 4)
	for i := 0; i < 4; i++ {
		month := wrapMonth(first + 3*i)
		quarters = append(quarters, model.Quarter{
			Index: i + 1,
			Label: fmt.Sprintf("%s Qtr %d", monthAbbrev(month), i+1),
			Month: month,
		})
	}
	return quarters
}

func wrapMonth(m int) time.Month {
	m = ((m - 1) % 12) + 1
	if m <= 0 {
		m += 12
	}
	return time.Month(m)
}

func monthAbbrev(m time.Month) string {
	return strings.ToUpper(m.String()[:3])
}
