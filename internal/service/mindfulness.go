package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type MindfulnessRequest struct {
	ActivityType string `json:"activity_type" validate:"required"`
	Duration     int64  `json:"duration" validate:"gte=1,lte=1440"`
}

type MindfulnessSummary struct {
	Count          int     `json:"count"`
	TotalMinutes   int64   `json:"total_minutes"`
	AverageMinutes float64 `json:"average_minutes"`
}

func AddMindfulnessActivity(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *MindfulnessRequest) (*internal.MindfulnessActivity, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	activity := internal.MindfulnessActivity{ActivityType: req.ActivityType, Duration: req.Duration, Timestamp: now()}
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		p.MindfulnessActivities = append(p.MindfulnessActivities, activity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// SummarizeMindfulness totals activity minutes. The average is 0 with no activities.
func SummarizeMindfulness(activities []internal.MindfulnessActivity) MindfulnessSummary {
	var s MindfulnessSummary
	for _, a := range activities {
		s.TotalMinutes += a.Duration
	}
	s.Count = len(activities)
	if s.Count > 0 {
		s.AverageMinutes = float64(s.TotalMinutes) / float64(s.Count)
	}
	return s
}
