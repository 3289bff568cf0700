package service

import "github.com/yourname/shammah/internal"

const recentLimit = 5

// Overview is the dashboard view of a profile, derived entirely from stored entities.
type Overview struct {
	OverallWellness  float64                        `json:"overall_wellness"`
	Pillars          []internal.WellnessPillar      `json:"pillars"`
	Points           int64                          `json:"points"`
	BadgesEarned     int                            `json:"badges_earned"`
	BadgesTotal      int                            `json:"badges_total"`
	Mindfulness      MindfulnessSummary             `json:"mindfulness"`
	Debts            DebtTotals                     `json:"debts"`
	RecentJournal    []internal.JournalEntry        `json:"recent_journal"`
	RecentActivities []internal.MindfulnessActivity `json:"recent_activities"`
	Tiers            []ContentTier                  `json:"tiers"`
}

func BuildOverview(p *internal.UserProfile) Overview {
	earned := 0
	for _, b := range p.Badges {
		if b.Achieved {
			earned++
		}
	}
	recent := make([]internal.MindfulnessActivity, 0, recentLimit)
	for i := len(p.MindfulnessActivities) - 1; i >= 0 && len(recent) < recentLimit; i-- {
		recent = append(recent, p.MindfulnessActivities[i])
	}
	return Overview{
		OverallWellness:  OverallWellness(p.WellnessPillars),
		Pillars:          p.WellnessPillars,
		Points:           p.Points,
		BadgesEarned:     earned,
		BadgesTotal:      len(p.Badges),
		Mindfulness:      SummarizeMindfulness(p.MindfulnessActivities),
		Debts:            SummarizeDebts(p.Debts),
		RecentJournal:    RecentJournalEntries(p.JournalEntries, recentLimit),
		RecentActivities: recent,
		Tiers:            UnlockedTiers(p.Points),
	}
}
