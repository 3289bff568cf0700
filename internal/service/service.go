package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

var validate = validator.New()

// now is the clock used to stamp new records.
var now = internal.Now

// ValidateRequest runs struct-tag validation and reports failures as internal.ErrInvalid.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalid, err)
	}
	return nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{internal.ErrInvalid}, args...)...)
}

// mutateProfile applies fn as one atomic read-modify-write and rejects results
// that break profile invariants.
func mutateProfile(ctx context.Context, repo storage.ProfileRepository, user *internal.User, fn func(p *internal.UserProfile) error) (*internal.UserProfile, error) {
	return repo.UpdateProfile(ctx, user.ID, func(p *internal.UserProfile) error {
		if err := fn(p); err != nil {
			return err
		}
		return p.CheckInvariants()
	})
}

func isNotFound(err error) bool { return errors.Is(err, internal.ErrNotFound) }

func wrapNotFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, internal.ErrNotFound)...)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
