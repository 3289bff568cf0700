package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type PillarRequest struct {
	Pillar   string `json:"pillar" validate:"required"`
	Progress int    `json:"progress" validate:"gte=0,lte=100"`
}

// OverallWellness is the unweighted mean of the pillar progress values.
func OverallWellness(pillars []internal.WellnessPillar) float64 {
	if len(pillars) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pillars {
		sum += p.Progress
	}
	return float64(sum) / float64(len(pillars))
}

func UpdatePillar(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *PillarRequest) (*internal.WellnessPillar, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	id, ok := internal.ParsePillar(req.Pillar)
	if !ok {
		return nil, invalidf("unknown pillar %q", req.Pillar)
	}
	var updated internal.WellnessPillar
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		pl, ok := p.Pillar(id)
		if !ok {
			return wrapNotFound("pillar %s", id)
		}
		pl.Progress = req.Progress
		updated = *pl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
