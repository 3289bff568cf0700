package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type JournalRequest struct {
	Content string `json:"content" validate:"required"`
}

func AddJournalEntry(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *JournalRequest) (*internal.JournalEntry, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	entry := internal.JournalEntry{Content: req.Content, Timestamp: now()}
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		p.JournalEntries = append(p.JournalEntries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecentJournalEntries returns up to limit entries, newest first. limit <= 0 means all.
func RecentJournalEntries(entries []internal.JournalEntry, limit int) []internal.JournalEntry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]internal.JournalEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
