package session

import "errors"

var (
	// ErrFiltersNotSet means checkout was reached before any search ran.
	ErrFiltersNotSet = errors.New("filters not set")
	// ErrNoPlanSelected means checkout was reached without booking a plan.
	ErrNoPlanSelected = errors.New("no plan selected")
	// ErrInvalidTransition means the action is not available on the current page.
	ErrInvalidTransition = errors.New("invalid page transition")
	// ErrUnknownPlan means a book action pointed at a plan that was never shown.
	ErrUnknownPlan = errors.New("unknown plan")
)

// WarningFor returns the user-facing warning for a guard error, or "" when
// err is not a guard failure.
func WarningFor(err error) string {
	switch {
	case errors.Is(err, ErrFiltersNotSet):
		return "Filters not set. Please go back and select your preferences."
	case errors.Is(err, ErrNoPlanSelected):
		return "No plan selected. Please go back and select a plan."
	case errors.Is(err, ErrInvalidTransition):
		return "That action is not available right now. Please go back to search."
	case errors.Is(err, ErrUnknownPlan):
		return "That plan is no longer available. Please pick another one."
	}
	return ""
}
