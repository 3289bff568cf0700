package client

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
)

const DateLayout = "2006-01-02"

var validate = validator.New()

// checkForm runs the struct's validate tags and reports the first failure.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return invalid(fe.Field(), "is required")
		}
		return invalid(fe.Field(), "failed %s check", fe.Tag())
	}
	return err
}

// parseScaled parses a non-negative decimal with at most two fractional digits
// into an integer scaled by 100, without going through floating point.
func parseScaled(field, s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, invalid(field, "is required")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, invalid(field, "has more than two decimal places")
	}
	if whole == "" {
		whole = "0"
	}
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, invalid(field, "%q is not a number", s)
			}
		}
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w >= math.MaxInt64/100 {
		return 0, invalid(field, "%q is out of range", s)
	}
	frac += strings.Repeat("0", 2-len(frac))
	f, _ := strconv.ParseInt(frac, 10, 64)
	return w*100 + f, nil
}

// ParseAmount turns "5000", "5,000.5" or "$5000.00" into cents.
func ParseAmount(field, s string) (internal.Cents, error) {
	v, err := parseScaled(field, s)
	return internal.Cents(v), err
}

// ParseRate turns a percentage such as "5.25" into basis points.
func ParseRate(field, s string) (internal.BasisPoints, error) {
	v, err := parseScaled(field, s)
	return internal.BasisPoints(v), err
}

// ParseDate reads a calendar date; an empty string means now.
func ParseDate(field, s string) (internal.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return internal.Now(), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return 0, invalid(field, "%q is not a date (want %s)", s, DateLayout)
	}
	return internal.FromStd(t), nil
}

type DebtForm struct {
	CreditorName string `validate:"required"`
	Amount       string `validate:"required"`
	InterestRate string
	DueDate      string
	Status       internal.DebtStatus
}

func (f *DebtForm) Request() (*service.DebtRequest, error) {
	f.CreditorName = strings.TrimSpace(f.CreditorName)
	if err := checkForm(f); err != nil {
		return nil, err
	}
	amount, err := ParseAmount("Amount", f.Amount)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, invalid("Amount", "must be greater than zero")
	}
	var rate internal.BasisPoints
	if strings.TrimSpace(f.InterestRate) != "" {
		if rate, err = ParseRate("InterestRate", f.InterestRate); err != nil {
			return nil, err
		}
	}
	due, err := ParseDate("DueDate", f.DueDate)
	if err != nil {
		return nil, err
	}
	return &service.DebtRequest{
		CreditorName: f.CreditorName,
		Amount:       amount,
		InterestRate: rate,
		DueDate:      due,
		Payments:     []internal.DebtPayment{},
		Status:       f.Status,
	}, nil
}

type PaymentForm struct {
	Amount string `validate:"required"`
	Date   string
}

// Request checks the amount is positive. Over-payment is not rejected here; the
// balance clamp happens when the payment is applied.
func (f *PaymentForm) Request() (*service.PaymentRequest, error) {
	if err := checkForm(f); err != nil {
		return nil, err
	}
	amount, err := ParseAmount("Amount", f.Amount)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, invalid("Amount", "must be greater than zero")
	}
	at, err := ParseDate("Date", f.Date)
	if err != nil {
		return nil, err
	}
	return &service.PaymentRequest{AmountPaid: amount, PaymentDate: at}, nil
}

type MedicationForm struct {
	Name      string `validate:"required"`
	Dosage    string `validate:"required"`
	Frequency string
	TimeOfDay string
	StartDate string
	EndDate   string
}

func (f *MedicationForm) Request() (*service.MedicationRequest, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Dosage = strings.TrimSpace(f.Dosage)
	if err := checkForm(f); err != nil {
		return nil, err
	}
	start, err := ParseDate("StartDate", f.StartDate)
	if err != nil {
		return nil, err
	}
	req := &service.MedicationRequest{
		Name:      f.Name,
		Dosage:    f.Dosage,
		Frequency: f.Frequency,
		TimeOfDay: f.TimeOfDay,
		StartDate: start,
	}
	if strings.TrimSpace(f.EndDate) != "" {
		end, err := ParseDate("EndDate", f.EndDate)
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, invalid("EndDate", "is before the start date")
		}
		req.EndDate = internal.Some(end)
	}
	return req, nil
}
