package service

import (
	"context"
	"strconv"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type DebtRequest struct {
	CreditorName string                 `json:"creditor_name" validate:"required"`
	Amount       internal.Cents         `json:"amount" validate:"gt=0"`
	InterestRate internal.BasisPoints   `json:"interest_rate" validate:"gte=0"`
	DueDate      internal.Time          `json:"due_date"`
	Payments     []internal.DebtPayment `json:"payments"`
	Status       internal.DebtStatus    `json:"status"`
}

type PaymentRequest struct {
	AmountPaid  internal.Cents `json:"amount_paid" validate:"gt=0"`
	PaymentDate internal.Time  `json:"payment_date"`
}

type DebtStatusRequest struct {
	Status internal.DebtStatus `json:"status"`
}

type DebtTotals struct {
	Original internal.Cents `json:"original"`
	Balance  internal.Cents `json:"balance"`
	Paid     internal.Cents `json:"paid"`
}

type BalancePoint struct {
	Label   string         `json:"label"`
	Balance internal.Cents `json:"balance"`
}

// ApplyPayment returns max(0, balance - amount).
func ApplyPayment(balance, amount internal.Cents) internal.Cents {
	if next := balance - amount; next > 0 {
		return next
	}
	return 0
}

// CurrentBalance is the last payment's remaining balance, or the original amount.
func CurrentBalance(d *internal.DebtRecord) internal.Cents {
	if len(d.Payments) == 0 {
		return d.Amount
	}
	return d.Payments[len(d.Payments)-1].RemainingBalance
}

func TotalPaid(d *internal.DebtRecord) internal.Cents {
	var sum internal.Cents
	for _, p := range d.Payments {
		sum += p.AmountPaid
	}
	return sum
}

// DebtProgress is the paid share of the original amount in percent, capped at 100,
// computed in hundredths of a percent with integer arithmetic.
func DebtProgress(d *internal.DebtRecord) float64 {
	if len(d.Payments) == 0 || d.Amount <= 0 {
		return 0
	}
	hundredths := int64(TotalPaid(d)) * 10000 / int64(d.Amount)
	if hundredths > 10000 {
		hundredths = 10000
	}
	return float64(hundredths) / 100
}

// AppendPayment records a payment against d. Prior records are never rewritten.
func AppendPayment(d *internal.DebtRecord, amount internal.Cents, at internal.Time) (internal.DebtPayment, error) {
	if amount <= 0 {
		return internal.DebtPayment{}, invalidf("payment amount must be positive")
	}
	payment := internal.DebtPayment{
		AmountPaid:       amount,
		RemainingBalance: ApplyPayment(CurrentBalance(d), amount),
		PaymentDate:      at,
	}
	d.Payments = append(d.Payments, payment)
	return payment, nil
}

// VerifyLedger replays the payments from the original amount and checks every
// stored balance against the clamped result.
func VerifyLedger(amount internal.Cents, payments []internal.DebtPayment) error {
	balance := amount
	for i, p := range payments {
		if p.AmountPaid <= 0 {
			return invalidf("payment %d amount must be positive", i)
		}
		balance = ApplyPayment(balance, p.AmountPaid)
		if p.RemainingBalance != balance {
			return invalidf("payment %d remaining balance %d, expected %d", i, p.RemainingBalance, balance)
		}
	}
	return nil
}

func SummarizeDebts(debts []internal.DebtRecord) DebtTotals {
	var t DebtTotals
	for i := range debts {
		t.Original += debts[i].Amount
		t.Balance += CurrentBalance(&debts[i])
	}
	t.Paid = t.Original - t.Balance
	return t
}

// BalanceHistory is the balance after each payment, starting from the original amount.
func BalanceHistory(d *internal.DebtRecord) []BalancePoint {
	out := make([]BalancePoint, 0, len(d.Payments)+1)
	out = append(out, BalancePoint{Label: "Start", Balance: d.Amount})
	for i, p := range d.Payments {
		out = append(out, BalancePoint{Label: "Payment " + strconv.Itoa(i+1), Balance: p.RemainingBalance})
	}
	return out
}

func validateDebt(req *DebtRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	if req.DueDate == 0 {
		req.DueDate = now()
	}
	if req.Payments == nil {
		req.Payments = []internal.DebtPayment{}
	}
	return VerifyLedger(req.Amount, req.Payments)
}

func AddDebt(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *DebtRequest) (*internal.DebtRecord, error) {
	if err := validateDebt(req); err != nil {
		return nil, err
	}
	var debt internal.DebtRecord
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		debt = internal.DebtRecord{
			ID:           p.AllocateDebtID(),
			CreditorName: req.CreditorName,
			Amount:       req.Amount,
			InterestRate: req.InterestRate,
			DueDate:      req.DueDate,
			Status:       req.Status,
			Payments:     req.Payments,
		}
		p.Debts = append(p.Debts, debt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

// UpdateDebt replaces every field of the debt in one atomic write.
func UpdateDebt(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64, req *DebtRequest) (*internal.DebtRecord, error) {
	if err := validateDebt(req); err != nil {
		return nil, err
	}
	var updated internal.DebtRecord
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		d, ok := p.Debt(id)
		if !ok {
			return debtNotFound(id)
		}
		d.CreditorName = req.CreditorName
		d.Amount = req.Amount
		d.InterestRate = req.InterestRate
		d.DueDate = req.DueDate
		d.Status = req.Status
		d.Payments = req.Payments
		updated = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteDebt(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64) error {
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		for i := range p.Debts {
			if p.Debts[i].ID == id {
				p.Debts = append(p.Debts[:i], p.Debts[i+1:]...)
				return nil
			}
		}
		return debtNotFound(id)
	})
	return err
}

// AddDebtPayment recomputes the remaining balance from the stored ledger; any
// balance the caller computed is not trusted.
func AddDebtPayment(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64, req *PaymentRequest) (*internal.DebtPayment, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	at := req.PaymentDate
	if at == 0 {
		at = now()
	}
	var payment internal.DebtPayment
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		d, ok := p.Debt(id)
		if !ok {
			return debtNotFound(id)
		}
		var err error
		payment, err = AppendPayment(d, req.AmountPaid, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func UpdateDebtStatus(ctx context.Context, repo storage.ProfileRepository, user *internal.User, id int64, req *DebtStatusRequest) (*internal.DebtRecord, error) {
	var updated internal.DebtRecord
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		d, ok := p.Debt(id)
		if !ok {
			return debtNotFound(id)
		}
		d.Status = req.Status
		updated = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func debtNotFound(id int64) error {
	return wrapNotFound("debt %d", id)
}
