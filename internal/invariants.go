package internal

import "fmt"

// CheckInvariants verifies the structural rules a stored profile must satisfy.
func (p *UserProfile) CheckInvariants() error {
	if err := checkPillars(p.WellnessPillars); err != nil {
		return err
	}

	seenMeds := make(map[int64]bool, len(p.Medications))
	for _, m := range p.Medications {
		if seenMeds[m.ID] {
			return fmt.Errorf("%w: duplicate medication id %d", ErrInvalid, m.ID)
		}
		if m.ID >= p.NextMedicationID {
			return fmt.Errorf("%w: medication id %d not allocated", ErrInvalid, m.ID)
		}
		seenMeds[m.ID] = true
	}

	seenDebts := make(map[int64]bool, len(p.Debts))
	for _, d := range p.Debts {
		if seenDebts[d.ID] {
			return fmt.Errorf("%w: duplicate debt id %d", ErrInvalid, d.ID)
		}
		if d.ID >= p.NextDebtID {
			return fmt.Errorf("%w: debt id %d not allocated", ErrInvalid, d.ID)
		}
		seenDebts[d.ID] = true
		if err := checkPayments(d); err != nil {
			return err
		}
	}

	for _, b := range p.Badges {
		if b.Achieved && p.Points < b.PointsNeeded {
			return fmt.Errorf("%w: badge %q achieved below threshold", ErrInvalid, b.Name)
		}
	}
	return nil
}

func checkPillars(pillars []WellnessPillar) error {
	if len(pillars) != len(Pillars) {
		return fmt.Errorf("%w: expected %d pillars, got %d", ErrInvalid, len(Pillars), len(pillars))
	}
	seen := make(map[PillarID]bool, len(pillars))
	for _, pl := range pillars {
		if !pl.Name.Valid() {
			return fmt.Errorf("%w: unknown pillar %q", ErrInvalid, pl.Name)
		}
		if seen[pl.Name] {
			return fmt.Errorf("%w: duplicate pillar %q", ErrInvalid, pl.Name)
		}
		if pl.Progress < 0 || pl.Progress > 100 {
			return fmt.Errorf("%w: pillar %q progress %d out of range", ErrInvalid, pl.Name, pl.Progress)
		}
		seen[pl.Name] = true
	}
	return nil
}

// checkPayments replays the ledger from the original amount; every stored
// balance must equal max(0, previous - paid).
func checkPayments(d DebtRecord) error {
	balance := d.Amount
	for i, pay := range d.Payments {
		if pay.AmountPaid <= 0 {
			return fmt.Errorf("%w: debt %d payment %d amount must be positive", ErrInvalid, d.ID, i)
		}
		balance -= pay.AmountPaid
		if balance < 0 {
			balance = 0
		}
		if pay.RemainingBalance != balance {
			return fmt.Errorf("%w: debt %d payment %d remaining balance %d, expected %d", ErrInvalid, d.ID, i, pay.RemainingBalance, balance)
		}
	}
	return nil
}
