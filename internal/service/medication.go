package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type MedicationRequest struct {
	Name      string                         `json:"name" validate:"required"`
	Dosage    string                         `json:"dosage" validate:"required"`
	Frequency string                         `json:"frequency"`
	TimeOfDay string                         `json:"time_of_day"`
	StartDate internal.Time                  `json:"start_date"`
	EndDate   internal.Option[internal.Time] `json:"end_date"`
}

type AdherenceRequest struct {
	Taken bool   `json:"taken"`
	Notes string `json:"notes"`
}

func validateMedication(req *MedicationRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	if req.StartDate == 0 {
		req.StartDate = now()
	}
	if end, ok := req.EndDate.Get(); ok && end < req.StartDate {
		return invalidf("end date precedes start date")
	}
	return nil
}

func AddMedication(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *MedicationRequest) (*internal.MedicationRecord, error) {
	if err := validateMedication(req); err != nil {
		return nil, err
	}
	var med internal.MedicationRecord
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		med = internal.MedicationRecord{
			ID:            p.AllocateMedicationID(),
			Name:          req.Name,
			Dosage:        req.Dosage,
			Frequency:     req.Frequency,
			TimeOfDay:     req.TimeOfDay,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			AdherenceLogs: []internal.MedicationAdherence{},
		}
		p.Medications = append(p.Medications, med)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &med, nil
}

// UpdateMedication rewrites the schedule fields; adherence history is kept.
func UpdateMedication(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64, req *MedicationRequest) (*internal.MedicationRecord, error) {
	if err := validateMedication(req); err != nil {
		return nil, err
	}
	var updated internal.MedicationRecord
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		med, ok := p.Medication(id)
		if !ok {
			return medicationNotFound(id)
		}
		med.Name = req.Name
		med.Dosage = req.Dosage
		med.Frequency = req.Frequency
		med.TimeOfDay = req.TimeOfDay
		med.StartDate = req.StartDate
		med.EndDate = req.EndDate
		updated = *med
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteMedication(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64) error {
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		for i := range p.Medications {
			if p.Medications[i].ID == id {
				p.Medications = append(p.Medications[:i], p.Medications[i+1:]...)
				return nil
			}
		}
		return medicationNotFound(id)
	})
	return err
}

// LogAdherence appends one log to the medication; earlier logs are never touched.
func LogAdherence(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64, req *AdherenceRequest) (*internal.MedicationAdherence, error) {
	entry := internal.MedicationAdherence{Taken: req.Taken, Notes: req.Notes, Timestamp: now()}
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		med, ok := p.Medication(id)
		if !ok {
			return medicationNotFound(id)
		}
		med.AdherenceLogs = append(med.AdherenceLogs, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// AdherenceRate is the share of logs marked taken, in percent; 0 without logs.
func AdherenceRate(med *internal.MedicationRecord) float64 {
	if len(med.AdherenceLogs) == 0 {
		return 0
	}
	taken := 0
	for _, l := range med.AdherenceLogs {
		if l.Taken {
			taken++
		}
	}
	return float64(taken) * 100 / float64(len(med.AdherenceLogs))
}

func medicationNotFound(id int64) error {
	return wrapNotFound("medication %d", id)
}
