package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type PhotoRequest struct {
	Photo       internal.Blob `json:"photo"`
	Description string        `json:"description"`
	IsBaseline  bool          `json:"is_baseline"`
}

func UploadPhoto(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *PhotoRequest) (*internal.ProgressPhoto, error) {
	if req.Photo.Empty() {
		return nil, invalidf("photo content is required")
	}
	photo := internal.ProgressPhoto{
		Photo:       req.Photo,
		Description: req.Description,
		IsBaseline:  req.IsBaseline,
		Timestamp:   now(),
	}
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		p.ProgressPhotos = append(p.ProgressPhotos, photo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// BaselinePhoto is the first photo flagged as baseline.
func BaselinePhoto(photos []internal.ProgressPhoto) internal.Option[internal.ProgressPhoto] {
	for _, ph := range photos {
		if ph.IsBaseline {
			return internal.Some(ph)
		}
	}
	return internal.None[internal.ProgressPhoto]()
}

// FollowupPhoto is the most recent photo not flagged as baseline.
func FollowupPhoto(photos []internal.ProgressPhoto) internal.Option[internal.ProgressPhoto] {
	for i := len(photos) - 1; i >= 0; i-- {
		if !photos[i].IsBaseline {
			return internal.Some(photos[i])
		}
	}
	return internal.None[internal.ProgressPhoto]()
}
