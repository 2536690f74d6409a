// services/access_gate.go - Access Gate decision function
package services

import "postforge/models"

// GateInput carries the two read-only lookups the gate depends on: the
// authentication result and the profile fetch result. Either side may still
// be loading when the gate is evaluated.
type GateInput struct {
	AuthLoading    bool
	UserID         *uint
	ProfileLoading bool
	Profile        *models.Profile
}

type GateDecision int

const (
	// DecisionLoading: at least one input is still pending, show a loading
	// indicator and do not redirect.
	DecisionLoading GateDecision = iota
	// DecisionRedirectAuth: send the caller to the authentication /
	// onboarding entry point. A user without a team is routed identically to
	// an unauthenticated one.
	DecisionRedirectAuth
	// DecisionRender: render protected content.
	DecisionRender
)

func (d GateDecision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectAuth:
		return "redirect_auth"
	case DecisionRender:
		return "render"
	}
	return "unknown"
}

// EvaluateGate decides render-vs-redirect for a protected page load. Pure and
// side-effect-free: it is evaluated on every navigation and must be safe to
// re-run on every render.
func EvaluateGate(in GateInput) GateDecision {
	if in.AuthLoading || in.ProfileLoading {
		return DecisionLoading
	}
	if in.UserID == nil {
		return DecisionRedirectAuth
	}
	if in.Profile == nil || in.Profile.CurrentTeamID == nil {
		return DecisionRedirectAuth
	}
	return DecisionRender
}
