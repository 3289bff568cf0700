package internal

import "strings"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  Role   `json:"role,omitempty"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Blob references binary content either by URL or inline bytes.
type Blob struct {
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
}

func (b Blob) Empty() bool { return b.URL == "" && len(b.Data) == 0 }

type JournalEntry struct {
	Content   string `json:"content"`
	Timestamp Time   `json:"timestamp"`
}

type MindfulnessActivity struct {
	ActivityType string `json:"activity_type"`
	Duration     int64  `json:"duration"` // minutes
	Timestamp    Time   `json:"timestamp"`
}

type MedicationAdherence struct {
	Taken     bool   `json:"taken"`
	Notes     string `json:"notes"`
	Timestamp Time   `json:"timestamp"`
}

type MedicationRecord struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	Dosage        string                `json:"dosage"`
	Frequency     string                `json:"frequency"`
	TimeOfDay     string                `json:"time_of_day"`
	StartDate     Time                  `json:"start_date"`
	EndDate       Option[Time]          `json:"end_date"`
	AdherenceLogs []MedicationAdherence `json:"adherence_logs"`
}

// LastAdherence returns the most recently appended adherence log.
func (m *MedicationRecord) LastAdherence() Option[MedicationAdherence] {
	if len(m.AdherenceLogs) == 0 {
		return None[MedicationAdherence]()
	}
	return Some(m.AdherenceLogs[len(m.AdherenceLogs)-1])
}

type DebtPayment struct {
	AmountPaid       Cents `json:"amount_paid"`
	RemainingBalance Cents `json:"remaining_balance"`
	PaymentDate      Time  `json:"payment_date"`
}

type DebtRecord struct {
	ID           int64         `json:"id"`
	CreditorName string        `json:"creditor_name"`
	Amount       Cents         `json:"amount"`
	InterestRate BasisPoints   `json:"interest_rate"`
	DueDate      Time          `json:"due_date"`
	Status       DebtStatus    `json:"status"`
	Payments     []DebtPayment `json:"payments"`
}

type Badge struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	PointsNeeded int64        `json:"points_needed"`
	Achieved     bool         `json:"achieved"`
	AchievedAt   Option[Time] `json:"achieved_at"`
	Progress     int64        `json:"progress"`
}

type Reward struct {
	Source      string `json:"source"`
	Description string `json:"description"`
	RewardType  string `json:"reward_type"`
	Timestamp   Time   `json:"timestamp"`
	Points      int64  `json:"points"`
}

type WellnessPillar struct {
	Name     PillarID `json:"name"`
	Progress int      `json:"progress"` // 0-100
}

type ProgressPhoto struct {
	Photo       Blob   `json:"photo"`
	Description string `json:"description"`
	IsBaseline  bool   `json:"is_baseline"`
	Timestamp   Time   `json:"timestamp"`
}

type QuizResponse struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type Resource struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ResourceType string `json:"resource_type"`
	Link         string `json:"link"`
	Content      Blob   `json:"content"`
}

// Matches reports whether term occurs in the title or description, ignoring case.
func (r *Resource) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term)
}

type UserProfile struct {
	ID                    string                `json:"id"`
	Username              string                `json:"username"`
	Email                 string                `json:"email"`
	OnboardingCompleted   bool                  `json:"onboarding_completed"`
	UsageDurationMonths   int                   `json:"usage_duration_months"`
	Points                int64                 `json:"points"`
	JournalEntries        []JournalEntry        `json:"journal_entries"`
	MindfulnessActivities []MindfulnessActivity `json:"mindfulness_activities"`
	Medications           []MedicationRecord    `json:"medications"`
	Debts                 []DebtRecord          `json:"debts"`
	Badges                []Badge               `json:"badges"`
	Rewards               []Reward              `json:"rewards"`
	ProgressPhotos        []ProgressPhoto       `json:"progress_photos"`
	QuizResponses         []QuizResponse        `json:"quiz_responses"`
	WellnessPillars       []WellnessPillar      `json:"wellness_pillars"`
	NextMedicationID      int64                 `json:"next_medication_id"`
	NextDebtID            int64                 `json:"next_debt_id"`
	CreatedAt             Time                  `json:"created_at"`
}

// NewUserProfile returns a profile with all seven pillars at zero and the default badge set.
func NewUserProfile(id, email, username string, now Time) *UserProfile {
	return &UserProfile{
		ID:                    id,
		Username:              username,
		Email:                 email,
		JournalEntries:        []JournalEntry{},
		MindfulnessActivities: []MindfulnessActivity{},
		Medications:           []MedicationRecord{},
		Debts:                 []DebtRecord{},
		Badges:                DefaultBadges(),
		Rewards:               []Reward{},
		ProgressPhotos:        []ProgressPhoto{},
		QuizResponses:         []QuizResponse{},
		WellnessPillars:       DefaultPillars(),
		NextMedicationID:      1,
		NextDebtID:            1,
		CreatedAt:             now,
	}
}

func (p *UserProfile) Medication(id int64) (*MedicationRecord, bool) {
	for i := range p.Medications {
		if p.Medications[i].ID == id {
			return &p.Medications[i], true
		}
	}
	return nil, false
}

func (p *UserProfile) Debt(id int64) (*DebtRecord, bool) {
	for i := range p.Debts {
		if p.Debts[i].ID == id {
			return &p.Debts[i], true
		}
	}
	return nil, false
}

func (p *UserProfile) Pillar(id PillarID) (*WellnessPillar, bool) {
	for i := range p.WellnessPillars {
		if p.WellnessPillars[i].Name == id {
			return &p.WellnessPillars[i], true
		}
	}
	return nil, false
}

// AllocateMedicationID hands out the next medication id; ids are never reused.
func (p *UserProfile) AllocateMedicationID() int64 {
	if p.NextMedicationID < 1 {
		p.NextMedicationID = 1
	}
	id := p.NextMedicationID
	p.NextMedicationID++
	return id
}

func (p *UserProfile) AllocateDebtID() int64 {
	if p.NextDebtID < 1 {
		p.NextDebtID = 1
	}
	id := p.NextDebtID
	p.NextDebtID++
	return id
}

func DefaultBadges() []Badge {
	return []Badge{
		{Name: "First Steps", Description: "Log your first wellness activity", PointsNeeded: 10},
		{Name: "Committed", Description: "Earn 100 points", PointsNeeded: 100},
		{Name: "Dedicated", Description: "Earn 200 points", PointsNeeded: 200},
		{Name: "Wellness Champion", Description: "Earn 400 points", PointsNeeded: 400},
	}
}
