package internal

import (
	"encoding/json"
	"fmt"
)

type DebtStatusKind string

const (
	DebtActive  DebtStatusKind = "active"
	DebtOverdue DebtStatusKind = "overdue"
	DebtPaidOff DebtStatusKind = "paidOff"
)

// DebtStatus is a tagged union: active, overdue(amount) or paid off.
// The zero value is active.
type DebtStatus struct {
	kind    DebtStatusKind
	overdue Cents
}

func DebtStatusActive() DebtStatus { return DebtStatus{kind: DebtActive} }

func DebtStatusOverdue(amount Cents) DebtStatus {
	return DebtStatus{kind: DebtOverdue, overdue: amount}
}

func DebtStatusPaidOff() DebtStatus { return DebtStatus{kind: DebtPaidOff} }

func (s DebtStatus) Kind() DebtStatusKind {
	if s.kind == "" {
		return DebtActive
	}
	return s.kind
}

// Match calls exactly one of the handlers for the variant held by s.
func (s DebtStatus) Match(active func(), overdue func(amount Cents), paidOff func()) {
	switch s.Kind() {
	case DebtOverdue:
		overdue(s.overdue)
	case DebtPaidOff:
		paidOff()
	default:
		active()
	}
}

func (s DebtStatus) String() string {
	var out string
	s.Match(
		func() { out = "active" },
		func(amount Cents) { out = "overdue (" + amount.String() + ")" },
		func() { out = "paid off" },
	)
	return out
}

type debtStatusJSON struct {
	Kind   DebtStatusKind `json:"kind"`
	Amount *Cents         `json:"amount,omitempty"`
}

func (s DebtStatus) MarshalJSON() ([]byte, error) {
	w := debtStatusJSON{Kind: s.Kind()}
	if w.Kind == DebtOverdue {
		amount := s.overdue
		w.Amount = &amount
	}
	return json.Marshal(w)
}

func (s *DebtStatus) UnmarshalJSON(data []byte) error {
	var w debtStatusJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case DebtActive, "":
		*s = DebtStatusActive()
	case DebtPaidOff:
		*s = DebtStatusPaidOff()
	case DebtOverdue:
		if w.Amount == nil {
			return fmt.Errorf("debt status: overdue requires amount")
		}
		*s = DebtStatusOverdue(*w.Amount)
	default:
		return fmt.Errorf("debt status: unknown kind %q", w.Kind)
	}
	return nil
}
