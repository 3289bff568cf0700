package client

import "fmt"

type View int

const (
	ViewLoading View = iota
	ViewLanding
	ViewProfileSetup
	ViewOnboarding
	ViewDashboard
)

var viewNames = [...]string{"loading", "landing", "profile-setup", "onboarding", "dashboard"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// SessionState is what navigation needs to know about the current session.
type SessionState struct {
	Initializing  bool
	Authenticated bool
	ProfileLoaded bool
	HasProfile    bool
	Onboarded     bool
}

// ResolveView picks the screen for s. Unauthenticated users land on the
// landing page; a missing profile goes to setup before onboarding.
func ResolveView(s SessionState) View {
	switch {
	case s.Initializing:
		return ViewLoading
	case !s.Authenticated:
		return ViewLanding
	case !s.ProfileLoaded:
		return ViewLoading
	case !s.HasProfile:
		return ViewProfileSetup
	case !s.Onboarded:
		return ViewOnboarding
	default:
		return ViewDashboard
	}
}
