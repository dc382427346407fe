// Package wizard drives the member registration flow: identity verification, account
// setup and, for dependents, account sharing.
package wizard

// Step identifies one screen of the wizard.
type Step int

const (
	StepIdentity Step = iota
	StepAccount
	StepSharing
	// StepComplete is the terminal phase. It is not part of the breadcrumb list.
	StepComplete
)

var stepNames = [...]string{"identity", "account", "sharing", "complete"}

var stepTitles = [...]string{"Verify Your Identity", "Set Up Your Account", "Account Sharing", "Complete"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Title is the breadcrumb label.
func (s Step) Title() string {
	if s < 0 || int(s) >= len(stepTitles) {
		return ""
	}
	return stepTitles[s]
}

// State is the coordinator's position in the flow. The step list is derived from
// BranchesToAccountSharing, so there is only one list to keep consistent.
type State struct {
	ActiveIndex              int
	Step1Complete            bool
	Step2Complete            bool
	BranchesToAccountSharing bool

	branchDecided bool
}

// Steps returns the ordered step list: two steps until the branch is known to include
// account sharing, three afterwards.
func (s State) Steps() []Step {
	if s.branchDecided && s.BranchesToAccountSharing {
		return []Step{StepIdentity, StepAccount, StepSharing}
	}
	return []Step{StepIdentity, StepAccount}
}

// Current returns the active step, or StepComplete once every step is done.
func (s State) Current() Step {
	steps := s.Steps()
	if s.ActiveIndex >= len(steps) {
		return StepComplete
	}
	return steps[s.ActiveIndex]
}

// Terminal reports whether the wizard has finished.
func (s State) Terminal() bool {
	return s.Current() == StepComplete
}

// BranchDecided reports whether identity verification has fixed the step count.
func (s State) BranchDecided() bool {
	return s.branchDecided
}

func (s *State) decideBranch(sharing bool) {
	if s.branchDecided {
		return
	}
	s.BranchesToAccountSharing = sharing
	s.branchDecided = true
}

// advance completes the active step and moves to the next one.
func (s *State) advance() Step {
	switch s.Current() {
	case StepIdentity:
		s.Step1Complete = true
	case StepAccount:
		s.Step2Complete = true
	}
	s.ActiveIndex++
	return s.Current()
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Step     Step
	Title    string
	Current  bool
	Complete bool
}

// Crumbs renders the step list for the breadcrumb bar.
func (s State) Crumbs() []Crumb {
	steps := s.Steps()
	crumbs := make([]Crumb, len(steps))
	for i, step := range steps {
		crumbs[i] = Crumb{
			Step:     step,
			Title:    step.Title(),
			Current:  i == s.ActiveIndex,
			Complete: i < s.ActiveIndex,
		}
	}
	return crumbs
}

// Status is the single discriminator of a step's lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "unknown"
	}
}
