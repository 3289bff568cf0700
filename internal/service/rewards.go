package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

const (
	ActivityPoints  int64 = 10
	ReflectionBonus int64 = 5

	RewardTypePoints = "points"
)

type RewardRequest struct {
	Category        string `json:"category" validate:"required"`
	ActivityScore   int64  `json:"activity_score" validate:"gte=0"`
	ReflectionScore int64  `json:"reflection_score" validate:"gte=0"`
	CategoryScore   int64  `json:"category_score" validate:"gte=0"`
	Description     string `json:"description"`
}

type ActivityScore struct {
	Activity   int64 `json:"activity"`
	Reflection int64 `json:"reflection"`
	Category   int64 `json:"category"`
}

// ContentTier is premium content unlocked at a point threshold.
type ContentTier struct {
	Name      string `json:"name"`
	Threshold int64  `json:"threshold"`
	Unlocked  bool   `json:"unlocked"`
}

var contentTiers = []ContentTier{
	{Name: "Advanced Skincare Routine Guide", Threshold: 100},
	{Name: "Personalized Nutrition Plan", Threshold: 200},
	{Name: "Expert Wellness Consultation", Threshold: 400},
}

// ScoreActivity awards the base activity points plus the reflection bonus when
// the reflection has any non-blank text.
func ScoreActivity(reflection string) ActivityScore {
	s := ActivityScore{Activity: ActivityPoints}
	if !isBlank(reflection) {
		s.Reflection = ReflectionBonus
	}
	s.Category = s.Activity + s.Reflection
	return s
}

// AccrueReward appends exactly one reward for score, adds it to the point
// total and re-evaluates badges.
func AccrueReward(p *internal.UserProfile, category, description string, score int64, at internal.Time) internal.Reward {
	r := internal.Reward{
		Source:      category,
		Description: description,
		RewardType:  RewardTypePoints,
		Timestamp:   at,
		Points:      score,
	}
	p.Rewards = append(p.Rewards, r)
	p.Points += score
	p.Badges = EvaluateBadges(p.Badges, p.Points, at)
	return r
}

// EvaluateBadges unlocks every badge whose threshold is met. Unlocking is one-way
// and progress never moves backwards.
func EvaluateBadges(badges []internal.Badge, points int64, at internal.Time) []internal.Badge {
	out := make([]internal.Badge, len(badges))
	for i, b := range badges {
		if !b.Achieved && points >= b.PointsNeeded {
			b.Achieved = true
			b.AchievedAt = internal.Some(at)
		}
		progress := points
		if progress > b.PointsNeeded {
			progress = b.PointsNeeded
		}
		if b.Achieved {
			progress = b.PointsNeeded
		}
		if progress > b.Progress {
			b.Progress = progress
		}
		out[i] = b
	}
	return out
}

// BadgeCompletion is the percent of the badge threshold reached, capped at 100.
func BadgeCompletion(b internal.Badge, points int64) float64 {
	if b.Achieved || b.PointsNeeded <= 0 {
		return 100
	}
	pct := float64(points) * 100 / float64(b.PointsNeeded)
	if pct > 100 {
		return 100
	}
	return pct
}

func UnlockedTiers(points int64) []ContentTier {
	out := make([]ContentTier, len(contentTiers))
	for i, t := range contentTiers {
		t.Unlocked = points >= t.Threshold
		out[i] = t
	}
	return out
}

func ManageRewards(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *RewardRequest) (*internal.Reward, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.CategoryScore != req.ActivityScore+req.ReflectionScore {
		return nil, invalidf("category score %d does not equal activity %d + reflection %d",
			req.CategoryScore, req.ActivityScore, req.ReflectionScore)
	}
	var reward internal.Reward
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		reward = AccrueReward(p, req.Category, req.Description, req.CategoryScore, now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reward, nil
}
