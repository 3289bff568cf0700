package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/client"
)

var CLI struct {
	URL     string        `help:"Base URL of the shammah server." env:"SHAMMAH_URL" default:"http://localhost:8088"`
	Token   string        `help:"Bearer token for the API." env:"SHAMMAH_TOKEN"`
	Timeout time.Duration `help:"Per-request timeout." default:"30s"`
	Verbose bool          `short:"v" help:"Log failed calls to stderr."`

	Status StatusCmd `cmd:"" help:"Show which screen the account is on."`

	Profile struct {
		Create ProfileCreateCmd `cmd:"" help:"Create your profile."`
		Show   ProfileShowCmd   `cmd:"" help:"Show profile overview." default:"1"`
	} `cmd:"" help:"Manage your profile."`
	Onboard OnboardCmd `cmd:"" help:"Answer the onboarding quiz and finish onboarding."`

	Journal struct {
		Add JournalAddCmd `cmd:"" help:"Write a journal entry."`
	} `cmd:"" help:"Journal entries."`
	Mindfulness struct {
		Add     MindfulnessAddCmd     `cmd:"" help:"Log a mindfulness activity."`
		Summary MindfulnessSummaryCmd `cmd:"" help:"Total and average minutes." default:"1"`
	} `cmd:"" help:"Mindfulness activities."`
	Med struct {
		Add  MedAddCmd  `cmd:"" help:"Add a medication."`
		Log  MedLogCmd  `cmd:"" help:"Log a dose as taken or skipped."`
		List MedListCmd `cmd:"" help:"List medications." default:"1"`
	} `cmd:"" help:"Medications and adherence."`
	Debt struct {
		Add  DebtAddCmd  `cmd:"" help:"Add a debt."`
		Pay  DebtPayCmd  `cmd:"" help:"Record a payment."`
		List DebtListCmd `cmd:"" help:"List debts with progress." default:"1"`
	} `cmd:"" help:"Debts and payments."`
	Pillar struct {
		Log PillarLogCmd `cmd:"" help:"Log an activity for a pillar and earn points."`
		Set PillarSetCmd `cmd:"" help:"Set a pillar's progress."`
	} `cmd:"" help:"Wellness pillars."`
	Rewards RewardsCmd `cmd:"" help:"Show points, badges and unlocked content."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("shammah"),
		kong.Description("Command-line client for the shammah wellness tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	logger := internal.NopLogger()
	if CLI.Verbose {
		l, err := internal.NewLogger("development", "warn")
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync() //nolint:errcheck

	svc := client.NewHTTPService(client.Config{BaseURL: CLI.URL, Token: CLI.Token, Timeout: CLI.Timeout})
	appCtx := &Context{
		Store:         client.NewStore(svc, logger),
		Out:           os.Stdout,
		Authenticated: CLI.Token != "",
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
