package internal

import "strings"

type PillarID string

const (
	PillarPhysical  PillarID = "physical"
	PillarEmotional PillarID = "emotional"
	PillarSocial    PillarID = "social"
	PillarFinancial PillarID = "financial"
	PillarLeisure   PillarID = "leisure"
	PillarGrowth    PillarID = "growth"
	PillarSpiritual PillarID = "spiritual"
)

// Pillars lists the seven wellness pillars in display order.
var Pillars = []PillarID{
	PillarPhysical,
	PillarEmotional,
	PillarSocial,
	PillarFinancial,
	PillarLeisure,
	PillarGrowth,
	PillarSpiritual,
}

var pillarNames = map[PillarID]string{
	PillarPhysical:  "Physical Care",
	PillarEmotional: "Emotional Resilience",
	PillarSocial:    "Social Connection",
	PillarFinancial: "Financial Health",
	PillarLeisure:   "Leisure & Fun",
	PillarGrowth:    "Personal Growth",
	PillarSpiritual: "Spiritual Meaning",
}

func (p PillarID) DisplayName() string {
	if n, ok := pillarNames[p]; ok {
		return n
	}
	return string(p)
}

func (p PillarID) Valid() bool {
	_, ok := pillarNames[p]
	return ok
}

// ParsePillar accepts a pillar id or its display name, ignoring case.
func ParsePillar(s string) (PillarID, bool) {
	s = strings.TrimSpace(s)
	for _, id := range Pillars {
		if strings.EqualFold(s, string(id)) || strings.EqualFold(s, pillarNames[id]) {
			return id, true
		}
	}
	return "", false
}

func DefaultPillars() []WellnessPillar {
	out := make([]WellnessPillar, len(Pillars))
	for i, id := range Pillars {
		out[i] = WellnessPillar{Name: id}
	}
	return out
}
