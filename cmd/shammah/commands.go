package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/client"
	"github.com/yourname/shammah/internal/service"
)

type Context struct {
	Store         *client.Store
	Out           io.Writer
	Authenticated bool
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) profile(ctx context.Context) (*internal.UserProfile, error) {
	opt, err := c.Store.Profile(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := opt.Get()
	if !ok {
		return nil, fmt.Errorf("no profile yet; run `shammah profile create`")
	}
	return &p, nil
}

func parsePillar(s string) (internal.PillarID, error) {
	id, ok := internal.ParsePillar(s)
	if !ok {
		names := make([]string, len(internal.Pillars))
		for i, p := range internal.Pillars {
			names[i] = string(p)
		}
		return "", fmt.Errorf("unknown pillar %q (one of %s)", s, strings.Join(names, ", "))
	}
	return id, nil
}

type StatusCmd struct{}

func (s *StatusCmd) Run(c *Context) error {
	st, err := c.Store.Session(context.Background(), c.Authenticated)
	if err != nil {
		return err
	}
	c.printf("%s\n", client.ResolveView(st))
	return nil
}

type ProfileCreateCmd struct {
	Email    string `arg:"" help:"Email address."`
	Username string `arg:"" help:"Display name."`
}

func (p *ProfileCreateCmd) Run(c *Context) error {
	if err := c.Store.CreateProfile(context.Background(), p.Email, p.Username); err != nil {
		return err
	}
	c.printf("Profile created for %s\n", p.Username)
	return nil
}

type ProfileShowCmd struct{}

func (s *ProfileShowCmd) Run(c *Context) error {
	p, err := c.profile(context.Background())
	if err != nil {
		return err
	}
	c.printf("%s <%s>\n", p.Username, p.Email)
	c.printf("Member since %s, onboarding complete: %t\n", p.CreatedAt.Date(), p.OnboardingCompleted)
	c.printf("Points: %d\n", p.Points)
	c.printf("Overall wellness: %.1f%%\n", service.OverallWellness(p.WellnessPillars))
	for _, pl := range p.WellnessPillars {
		c.printf("  %-22s %3d%%\n", pl.Name.DisplayName(), pl.Progress)
	}
	for _, e := range service.RecentJournalEntries(p.JournalEntries, 3) {
		c.printf("  [%s] %s\n", e.Timestamp.Date(), e.Content)
	}
	return nil
}

var onboardingQuestions = []struct{ ID, Question string }{
	{"condition", "Which health condition(s) are you managing?"},
	{"duration", "How long have you been managing this condition?"},
	{"goals", "What are your primary wellness goals?"},
	{"challenges", "What challenges do you face in managing your condition?"},
	{"support", "What type of support would be most helpful?"},
}

type OnboardCmd struct {
	Answers map[string]string `short:"a" help:"Quiz answers as question=answer (condition, duration, goals, challenges, support)."`
}

func (o *OnboardCmd) Run(c *Context) error {
	ctx := context.Background()
	for _, q := range onboardingQuestions {
		answer, ok := o.Answers[q.ID]
		if !ok {
			return fmt.Errorf("missing answer for %q: %s", q.ID, q.Question)
		}
		if err := c.Store.SaveQuizResponse(ctx, q.ID, answer); err != nil {
			return err
		}
	}
	if err := c.Store.CompleteOnboarding(ctx); err != nil {
		return err
	}
	c.printf("Onboarding complete\n")
	return nil
}

type JournalAddCmd struct {
	Content string `arg:"" help:"Entry text."`
}

func (j *JournalAddCmd) Run(c *Context) error {
	return c.Store.AddJournalEntry(context.Background(), j.Content)
}

type MindfulnessAddCmd struct {
	Type    string `arg:"" help:"Activity type, e.g. meditation."`
	Minutes int64  `arg:"" help:"Duration in minutes."`
}

func (m *MindfulnessAddCmd) Run(c *Context) error {
	return c.Store.AddMindfulnessActivity(context.Background(), m.Type, m.Minutes)
}

type MindfulnessSummaryCmd struct{}

func (m *MindfulnessSummaryCmd) Run(c *Context) error {
	p, err := c.profile(context.Background())
	if err != nil {
		return err
	}
	s := service.SummarizeMindfulness(p.MindfulnessActivities)
	c.printf("Sessions: %d\nTotal: %d min\nAverage: %.1f min\n", s.Count, s.TotalMinutes, s.AverageMinutes)
	return nil
}

type MedAddCmd struct {
	Name      string `arg:"" help:"Medication name."`
	Dosage    string `arg:"" help:"Dosage, e.g. 10mg."`
	Frequency string `short:"f" help:"How often."`
	Time      string `short:"t" help:"Time of day."`
	Start     string `help:"Start date (YYYY-MM-DD, default today)."`
	End       string `help:"End date (YYYY-MM-DD)."`
}

func (m *MedAddCmd) Run(c *Context) error {
	form := &client.MedicationForm{
		Name: m.Name, Dosage: m.Dosage, Frequency: m.Frequency,
		TimeOfDay: m.Time, StartDate: m.Start, EndDate: m.End,
	}
	return c.Store.AddMedication(context.Background(), form)
}

type MedLogCmd struct {
	ID      int64  `arg:"" help:"Medication id."`
	Skipped bool   `help:"Record the dose as not taken."`
	Notes   string `short:"n" help:"Notes."`
}

func (m *MedLogCmd) Run(c *Context) error {
	return c.Store.LogAdherence(context.Background(), m.ID, !m.Skipped, m.Notes)
}

type MedListCmd struct{}

func (m *MedListCmd) Run(c *Context) error {
	meds, err := c.Store.Medications(context.Background())
	if err != nil {
		return err
	}
	for i := range meds {
		med := &meds[i]
		c.printf("%d\t%s %s\t%s %s\tadherence %.0f%%\n", med.ID, med.Name, med.Dosage,
			med.Frequency, med.TimeOfDay, service.AdherenceRate(med))
	}
	return nil
}

type DebtAddCmd struct {
	Creditor string `arg:"" help:"Creditor name."`
	Amount   string `arg:"" help:"Original amount, e.g. 5000.00."`
	Rate     string `short:"r" help:"Interest rate in percent."`
	Due      string `help:"Due date (YYYY-MM-DD, default today)."`
}

func (d *DebtAddCmd) Run(c *Context) error {
	form := &client.DebtForm{
		CreditorName: d.Creditor, Amount: d.Amount, InterestRate: d.Rate, DueDate: d.Due,
		Status: internal.DebtStatusActive(),
	}
	return c.Store.AddDebt(context.Background(), form)
}

type DebtPayCmd struct {
	ID     int64  `arg:"" help:"Debt id."`
	Amount string `arg:"" help:"Amount paid."`
	Date   string `help:"Payment date (YYYY-MM-DD, default today)."`
}

func (d *DebtPayCmd) Run(c *Context) error {
	return c.Store.AddDebtPayment(context.Background(), d.ID, &client.PaymentForm{Amount: d.Amount, Date: d.Date})
}

type DebtListCmd struct{}

func (d *DebtListCmd) Run(c *Context) error {
	debts, err := c.Store.Debts(context.Background())
	if err != nil {
		return err
	}
	for i := range debts {
		debt := &debts[i]
		c.printf("%d\t%s\t%s of %s\t%.1f%% paid\t%s\n", debt.ID, debt.CreditorName,
			service.CurrentBalance(debt), debt.Amount, service.DebtProgress(debt), debt.Status)
	}
	t := service.SummarizeDebts(debts)
	c.printf("Total: %s remaining, %s paid\n", t.Balance, t.Paid)
	return nil
}

type PillarLogCmd struct {
	Pillar      string `arg:"" help:"Pillar id or name."`
	Description string `short:"d" help:"What you did." required:""`
	Reflection  string `short:"r" help:"Reflection text; earns a bonus."`
	Progress    int    `short:"p" help:"New pillar progress 0-100; negative leaves it unchanged." default:"-1"`
}

func (p *PillarLogCmd) Run(c *Context) error {
	id, err := parsePillar(p.Pillar)
	if err != nil {
		return err
	}
	score, err := c.Store.LogPillarActivity(context.Background(), id, p.Description, p.Reflection, p.Progress)
	if err != nil {
		return err
	}
	c.printf("+%d points (%d activity, %d reflection)\n", score.Category, score.Activity, score.Reflection)
	return nil
}

type PillarSetCmd struct {
	Pillar   string `arg:"" help:"Pillar id or name."`
	Progress int    `arg:"" help:"Progress 0-100."`
}

func (p *PillarSetCmd) Run(c *Context) error {
	id, err := parsePillar(p.Pillar)
	if err != nil {
		return err
	}
	return c.Store.UpdatePillarProgress(context.Background(), id, p.Progress)
}

type RewardsCmd struct{}

func (r *RewardsCmd) Run(c *Context) error {
	p, err := c.profile(context.Background())
	if err != nil {
		return err
	}
	c.printf("Points: %d\n", p.Points)
	for _, b := range p.Badges {
		mark := " "
		if b.Achieved {
			mark = "x"
		}
		c.printf("[%s] %-18s %5.1f%%  %s\n", mark, b.Name, service.BadgeCompletion(b, p.Points), b.Description)
	}
	for _, t := range service.UnlockedTiers(p.Points) {
		if t.Unlocked {
			c.printf("Unlocked: %s\n", t.Name)
		}
	}
	return nil
}
