package domain

// Well-known navigation targets used by the access gate.
const (
	PathLogin          = "/login"
	PathApprovalNeeded = "/approval-needed"
	PathOnboarding     = "/onboarding"
	PathDashboard      = "/dashboard"
)

// AuthState is everything the gate needs to decide a single navigation.
// It is resolved once per request and never mutated by the pipeline.
type AuthState struct {
	Session     *Session
	User        *User
	Onboarded   bool
	RequestPath string
}

// Decision is the outcome of running the gate pipeline.
type Decision struct {
	Allow bool
	// Target is the redirect destination when Allow is false.
	Target string
	// CarryReturnPath attaches the original request path as a redirectTo
	// query value so the destination can route back after success.
	CarryReturnPath bool
	// Stage names the pipeline stage that produced the decision, for
	// logging and metrics.
	Stage string
}

// Pipeline stage names.
const (
	StageAnonymous  = "anonymous"
	StageApproval   = "approval"
	StageOnboarding = "onboarding"
	StageRole       = "role"
	StageAllowed    = "allowed"
)

// Allowed is the terminal allow decision.
func Allowed() Decision {
	return Decision{Allow: true, Stage: StageAllowed}
}

// RedirectTo builds a redirect decision for the given stage.
func RedirectTo(stage, target string, carryReturnPath bool) Decision {
	return Decision{Target: target, CarryReturnPath: carryReturnPath, Stage: stage}
}
