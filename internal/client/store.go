package client

import (
	"context"
	"strings"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
)

// Store fronts a Service with the read-through Cache. Mutations validate
// locally, call the service, and only on success invalidate the collections
// they touched; a failed call leaves every cached view as it was.
type Store struct {
	svc    Service
	cache  *Cache
	logger internal.Logger
}

func NewStore(svc Service, logger internal.Logger) *Store {
	return &Store{svc: svc, cache: NewCache(), logger: logger}
}

func (s *Store) Cache() *Cache { return s.cache }

func (s *Store) mutate(ctx context.Context, what string, call func(context.Context) error, keys ...string) error {
	if err := call(ctx); err != nil {
		s.logger.Warnf("client: %s failed: %v", what, err)
		return err
	}
	s.cache.Invalidate(keys...)
	return nil
}

func (s *Store) Profile(ctx context.Context) (internal.Option[internal.UserProfile], error) {
	return Load(ctx, s.cache, KeyProfile, s.svc.GetCallerProfile)
}

func (s *Store) Points(ctx context.Context) (int64, error) {
	return Load(ctx, s.cache, KeyPoints, s.svc.GetPoints)
}

func (s *Store) OnboardingCompleted(ctx context.Context) (bool, error) {
	return Load(ctx, s.cache, KeyOnboarding, s.svc.IsOnboardingCompleted)
}

func (s *Store) Medications(ctx context.Context) ([]internal.MedicationRecord, error) {
	return Load(ctx, s.cache, KeyMedications, s.svc.ListMedications)
}

func (s *Store) Debts(ctx context.Context) ([]internal.DebtRecord, error) {
	return Load(ctx, s.cache, KeyDebts, s.svc.ListDebts)
}

func (s *Store) Resources(ctx context.Context) ([]internal.Resource, error) {
	return Load(ctx, s.cache, KeyResources, func(ctx context.Context) ([]internal.Resource, error) {
		return s.svc.ListResources(ctx, "", "")
	})
}

// Session reports the state navigation decisions are made from.
func (s *Store) Session(ctx context.Context, authenticated bool) (SessionState, error) {
	st := SessionState{Authenticated: authenticated}
	if !authenticated {
		return st, nil
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return st, err
	}
	st.ProfileLoaded = true
	st.HasProfile = profile.IsSome()
	if !st.HasProfile {
		return st, nil
	}
	st.Onboarded, err = s.OnboardingCompleted(ctx)
	return st, err
}

func (s *Store) CreateProfile(ctx context.Context, email, username string) error {
	req := service.ProfileRequest{Email: email, Username: username}
	if err := checkForm(&req); err != nil {
		return err
	}
	return s.mutate(ctx, "create profile", func(ctx context.Context) error {
		return s.svc.CreateProfile(ctx, email, username)
	}, KeyProfile, KeyOnboarding, KeyPoints)
}

func (s *Store) CompleteOnboarding(ctx context.Context) error {
	return s.mutate(ctx, "complete onboarding", s.svc.CompleteOnboarding, KeyProfile, KeyOnboarding)
}

func (s *Store) AddJournalEntry(ctx context.Context, content string) error {
	if isBlank(content) {
		return invalid("Content", "is required")
	}
	return s.mutate(ctx, "add journal entry", func(ctx context.Context) error {
		return s.svc.AddJournalEntry(ctx, content)
	}, KeyProfile)
}

func (s *Store) AddMindfulnessActivity(ctx context.Context, activityType string, minutes int64) error {
	if isBlank(activityType) {
		return invalid("ActivityType", "is required")
	}
	if minutes <= 0 {
		return invalid("Duration", "must be at least one minute")
	}
	return s.mutate(ctx, "add mindfulness activity", func(ctx context.Context) error {
		return s.svc.AddMindfulnessActivity(ctx, activityType, minutes)
	}, KeyProfile)
}

func (s *Store) AddMedication(ctx context.Context, form *MedicationForm) error {
	req, err := form.Request()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "add medication", func(ctx context.Context) error {
		return s.svc.AddMedication(ctx, req)
	}, KeyMedications, KeyProfile)
}

func (s *Store) UpdateMedication(ctx context.Context, id int64, form *MedicationForm) error {
	req, err := form.Request()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "update medication", func(ctx context.Context) error {
		return s.svc.UpdateMedication(ctx, id, req)
	}, KeyMedications, KeyProfile)
}

func (s *Store) DeleteMedication(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete medication", func(ctx context.Context) error {
		return s.svc.DeleteMedication(ctx, id)
	}, KeyMedications, KeyProfile)
}

func (s *Store) LogAdherence(ctx context.Context, id int64, taken bool, notes string) error {
	return s.mutate(ctx, "log adherence", func(ctx context.Context) error {
		return s.svc.LogAdherence(ctx, id, taken, notes)
	}, KeyMedications, KeyProfile)
}

func (s *Store) AddDebt(ctx context.Context, form *DebtForm) error {
	req, err := form.Request()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "add debt", func(ctx context.Context) error {
		return s.svc.AddDebt(ctx, req)
	}, KeyDebts, KeyProfile)
}

// UpdateDebt sends every field, status included, as one request.
func (s *Store) UpdateDebt(ctx context.Context, id int64, form *DebtForm, payments []internal.DebtPayment) error {
	req, err := form.Request()
	if err != nil {
		return err
	}
	if payments != nil {
		req.Payments = payments
	}
	return s.mutate(ctx, "update debt", func(ctx context.Context) error {
		return s.svc.UpdateDebt(ctx, id, req)
	}, KeyDebts, KeyProfile)
}

func (s *Store) DeleteDebt(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete debt", func(ctx context.Context) error {
		return s.svc.DeleteDebt(ctx, id)
	}, KeyDebts, KeyProfile)
}

func (s *Store) AddDebtPayment(ctx context.Context, id int64, form *PaymentForm) error {
	req, err := form.Request()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "add debt payment", func(ctx context.Context) error {
		return s.svc.AddDebtPayment(ctx, id, req)
	}, KeyDebts, KeyProfile)
}

func (s *Store) UpdateDebtStatus(ctx context.Context, id int64, status internal.DebtStatus) error {
	return s.mutate(ctx, "update debt status", func(ctx context.Context) error {
		return s.svc.UpdateDebtStatus(ctx, id, status)
	}, KeyDebts, KeyProfile)
}

// LogPillarActivity scores the activity, records the reward and bumps the
// pillar's progress in two calls. If the second call fails the reward stands.
func (s *Store) LogPillarActivity(ctx context.Context, pillar internal.PillarID, description, reflection string, progress int) (service.ActivityScore, error) {
	score := service.ScoreActivity(reflection)
	if !pillar.Valid() {
		return score, invalid("Pillar", "unknown pillar %q", pillar)
	}
	req := &service.RewardRequest{
		Category:        string(pillar),
		ActivityScore:   score.Activity,
		ReflectionScore: score.Reflection,
		CategoryScore:   score.Category,
		Description:     description,
	}
	if err := s.mutate(ctx, "manage rewards", func(ctx context.Context) error {
		return s.svc.ManageRewards(ctx, req)
	}, KeyProfile, KeyPoints); err != nil {
		return score, err
	}
	if progress < 0 {
		return score, nil
	}
	return score, s.UpdatePillarProgress(ctx, pillar, progress)
}

func (s *Store) UpdatePillarProgress(ctx context.Context, pillar internal.PillarID, progress int) error {
	if progress < 0 || progress > 100 {
		return invalid("Progress", "must be between 0 and 100")
	}
	return s.mutate(ctx, "update pillar", func(ctx context.Context) error {
		return s.svc.UpdatePillarProgress(ctx, pillar, progress)
	}, KeyProfile)
}

func (s *Store) SaveQuizResponse(ctx context.Context, questionID, answer string) error {
	if isBlank(answer) {
		return invalid("Answer", "is required")
	}
	return s.mutate(ctx, "save quiz response", func(ctx context.Context) error {
		return s.svc.SaveQuizResponse(ctx, questionID, answer)
	}, KeyProfile)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
