package scheduler

import "time"

// Policy holds the tunable scheduling rules. Values come from config and
// are injected at construction so tests can run synthetic policies.
type Policy struct {
	// HeavyHoursThreshold flags a service occurrence heavy when its
	// bracket hours meet or exceed it. Heavy work gets a dedicated visit.
	HeavyHoursThreshold float64
	// CouplingCeilingKW bounds the unit capacity up to which a transfer
	// switch service may ride along on another visit. Above the ceiling
	// the switchgear is dispatched on its own.
	CouplingCeilingKW float64
	// WeatherProfiles maps a site profile key to the months treated as
	// winter for weather-sensitive placement.
	WeatherProfiles map[string][]time.Month
	DefaultProfile  string
}

func DefaultPolicy() Policy {
	return Policy{
		HeavyHoursThreshold: 6,
		CouplingCeilingKW:   500,
		WeatherProfiles: map[string][]time.Month{
			"temperate": {time.December, time.January, time.February},
			"cold":      {time.November, time.December, time.January, time.February, time.March},
			"none":      {},
		},
		DefaultProfile: "temperate",
	}
}

// WinterFor resolves a weather profile key to its winter months. Unknown
// keys fall back to the default profile.
func (p Policy) WinterFor(profile string) []time.Month {
	if months, ok := p.WeatherProfiles[profile]; ok {
		return months
	}
	return p.WeatherProfiles[p.DefaultProfile]
}
