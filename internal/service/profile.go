package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type ProfileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=64"`
}

type UsageDurationRequest struct {
	Months int `json:"months" validate:"gte=0,lte=1200"`
}

func CreateProfile(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *ProfileRequest) (*internal.UserProfile, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	profile := internal.NewUserProfile(user.ID, req.Email, req.Username, now())
	if err := repo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile replaces the caller's profile. Identity and id counters cannot be
// moved backwards, so ids stay unique after deletions. Badges are owned by the
// server: the stored set is kept and re-evaluated against the new point total.
func SaveProfile(ctx context.Context, repo storage.ProfileRepository, user *internal.User, profile *internal.UserProfile) (*internal.UserProfile, error) {
	return mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		next := *profile
		next.ID = p.ID
		next.CreatedAt = p.CreatedAt
		if next.NextMedicationID < p.NextMedicationID {
			next.NextMedicationID = p.NextMedicationID
		}
		if next.NextDebtID < p.NextDebtID {
			next.NextDebtID = p.NextDebtID
		}
		if next.Points < p.Points {
			return invalidf("points cannot decrease")
		}
		next.Badges = EvaluateBadges(p.Badges, next.Points, now())
		*p = next
		return nil
	})
}

func GetPoints(ctx context.Context, repo storage.ProfileRepository, user *internal.User) (int64, error) {
	p, err := repo.GetProfile(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	return p.Points, nil
}

func CompleteOnboarding(ctx context.Context, repo storage.ProfileRepository, user *internal.User) (*internal.UserProfile, error) {
	return mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		p.OnboardingCompleted = true
		return nil
	})
}

// IsOnboardingCompleted is false for callers without a profile.
func IsOnboardingCompleted(ctx context.Context, repo storage.ProfileRepository, user *internal.User) (bool, error) {
	p, err := repo.GetProfile(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return p.OnboardingCompleted, nil
}

func SetUsageDuration(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *UsageDurationRequest) (*internal.UserProfile, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	return mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		p.UsageDurationMonths = req.Months
		return nil
	})
}
