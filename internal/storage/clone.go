package storage

import (
	"encoding/json"

	"github.com/yourname/shammah/internal"
)

// cloneProfile deep-copies a profile so callers never share slices with the store.
func cloneProfile(p *internal.UserProfile) (*internal.UserProfile, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out internal.UserProfile
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
