package client

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
)

// Service is the remote data service as seen by the client. Every call is an
// independent request; none are retried.
type Service interface {
	CreateProfile(ctx context.Context, email, username string) error
	GetCallerProfile(ctx context.Context) (internal.Option[internal.UserProfile], error)
	SaveProfile(ctx context.Context, profile *internal.UserProfile) error
	GetPoints(ctx context.Context) (int64, error)
	CompleteOnboarding(ctx context.Context) error
	IsOnboardingCompleted(ctx context.Context) (bool, error)
	SetUsageDuration(ctx context.Context, months int) error

	AddJournalEntry(ctx context.Context, content string) error
	AddMindfulnessActivity(ctx context.Context, activityType string, minutes int64) error

	ListMedications(ctx context.Context) ([]internal.MedicationRecord, error)
	AddMedication(ctx context.Context, req *service.MedicationRequest) error
	UpdateMedication(ctx context.Context, id int64, req *service.MedicationRequest) error
	DeleteMedication(ctx context.Context, id int64) error
	LogAdherence(ctx context.Context, id int64, taken bool, notes string) error

	ListDebts(ctx context.Context) ([]internal.DebtRecord, error)
	AddDebt(ctx context.Context, req *service.DebtRequest) error
	UpdateDebt(ctx context.Context, id int64, req *service.DebtRequest) error
	DeleteDebt(ctx context.Context, id int64) error
	AddDebtPayment(ctx context.Context, id int64, req *service.PaymentRequest) error
	UpdateDebtStatus(ctx context.Context, id int64, status internal.DebtStatus) error

	ManageRewards(ctx context.Context, req *service.RewardRequest) error
	UpdatePillarProgress(ctx context.Context, pillar internal.PillarID, progress int) error
	SaveQuizResponse(ctx context.Context, questionID, answer string) error

	ListResources(ctx context.Context, term, resourceType string) ([]internal.Resource, error)
	AddResource(ctx context.Context, req *service.ResourceRequest) error
	UpdateResource(ctx context.Context, id int64, req *service.ResourceRequest) error
	DeleteResource(ctx context.Context, id int64) error
}
