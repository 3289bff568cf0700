package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStdMillisecondPrecision(t *testing.T) {
	ts := Time(1_700_000_000_123_456_789)
	assert.Equal(t, int64(1_700_000_000_123), ts.Std().UnixMilli())
	assert.Equal(t, 0, ts.Std().Nanosecond()%int(time.Millisecond))
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "$5000.00", Cents(500000).String())
	assert.Equal(t, "$0.05", Cents(5).String())
	assert.Equal(t, "-$1.50", Cents(-150).String())
	assert.Equal(t, "5.5%", BasisPoints(550).String())
	assert.Equal(t, 5.25, BasisPoints(525).Percent())
}

func TestOptionJSON(t *testing.T) {
	type wrapper struct {
		End Option[Time] `json:"end"`
	}
	raw, err := json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"end":null}`, string(raw))

	raw, err = json.Marshal(wrapper{End: Some(Time(42))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"end":42}`, string(raw))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"end":7}`), &w))
	v, ok := w.End.Get()
	assert.True(t, ok)
	assert.Equal(t, Time(7), v)

	require.NoError(t, json.Unmarshal([]byte(`{"end":null}`), &w))
	assert.False(t, w.End.IsSome())
	assert.Equal(t, Time(3), w.End.OrElse(3))
}

func TestDebtStatusMatchIsExhaustive(t *testing.T) {
	cases := []struct {
		status DebtStatus
		want   string
	}{
		{DebtStatus{}, "active"},
		{DebtStatusActive(), "active"},
		{DebtStatusOverdue(2500), "overdue (" + Cents(2500).String() + ")"},
		{DebtStatusPaidOff(), "paid off"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.status.String())
	}

	var got Cents
	DebtStatusOverdue(900).Match(
		func() { t.Fatal("active called") },
		func(amount Cents) { got = amount },
		func() { t.Fatal("paid off called") },
	)
	assert.Equal(t, Cents(900), got)
}

func TestDebtStatusJSON(t *testing.T) {
	raw, err := json.Marshal(DebtStatusOverdue(1234))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"overdue","amount":1234}`, string(raw))

	var s DebtStatus
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, DebtOverdue, s.Kind())

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"paidOff"}`), &s))
	assert.Equal(t, DebtPaidOff, s.Kind())

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"overdue"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"lost"}`), &s))
}

func TestParsePillar(t *testing.T) {
	id, ok := ParsePillar("Leisure & Fun")
	assert.True(t, ok)
	assert.Equal(t, PillarLeisure, id)

	id, ok = ParsePillar(" SPIRITUAL ")
	assert.True(t, ok)
	assert.Equal(t, PillarSpiritual, id)

	_, ok = ParsePillar("cardio")
	assert.False(t, ok)
}

func TestNewUserProfileSatisfiesInvariants(t *testing.T) {
	p := NewUserProfile("u1", "a@example.com", "ann", Now())
	assert.Len(t, p.WellnessPillars, 7)
	assert.Len(t, p.Badges, 4)
	assert.NoError(t, p.CheckInvariants())
}

func TestCheckInvariants(t *testing.T) {
	fresh := func() *UserProfile { return NewUserProfile("u1", "a@example.com", "ann", 1) }

	p := fresh()
	p.WellnessPillars = p.WellnessPillars[:6]
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)

	p = fresh()
	p.WellnessPillars[2].Progress = 101
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)

	p = fresh()
	p.WellnessPillars[1].Name = PillarPhysical
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)

	p = fresh()
	p.Medications = append(p.Medications, MedicationRecord{ID: p.AllocateMedicationID()})
	assert.NoError(t, p.CheckInvariants())
	p.Medications = append(p.Medications, MedicationRecord{ID: 1})
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)

	p = fresh()
	id := p.AllocateDebtID()
	p.Debts = append(p.Debts, DebtRecord{ID: id, Amount: 1000, Payments: []DebtPayment{
		{AmountPaid: 400, RemainingBalance: 600},
		{AmountPaid: 100, RemainingBalance: 700},
	}})
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)

	p = fresh()
	id = p.AllocateDebtID()
	p.Debts = append(p.Debts, DebtRecord{ID: id, Amount: 1000, Payments: []DebtPayment{
		{AmountPaid: 100, RemainingBalance: 500},
	}})
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)
	p.Debts[0].Payments = []DebtPayment{{AmountPaid: 0, RemainingBalance: 1000}}
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)
	p.Debts[0].Payments = []DebtPayment{
		{AmountPaid: 100, RemainingBalance: 900},
		{AmountPaid: 5000, RemainingBalance: 0},
	}
	assert.NoError(t, p.CheckInvariants())

	p = fresh()
	p.Badges[0].Achieved = true
	assert.ErrorIs(t, p.CheckInvariants(), ErrInvalid)
}

func TestAllocatedIDsAreNeverReused(t *testing.T) {
	p := NewUserProfile("u1", "a@example.com", "ann", 1)
	first := p.AllocateDebtID()
	p.Debts = append(p.Debts, DebtRecord{ID: first})
	p.Debts = p.Debts[:0]
	assert.Greater(t, p.AllocateDebtID(), first)
}
