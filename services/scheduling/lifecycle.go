package scheduling

import (
	"slotwise/models"
)

// Action is a requested booking status transition.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no_show"
)

// transitions is the booking state machine: pending can be confirmed or
// cancelled; confirmed can be completed, cancelled or marked no-show;
// completed, cancelled and no_show are terminal.
var transitions = map[models.BookingStatus]map[Action]models.BookingStatus{
	models.BookingPending: {
		ActionConfirm: models.BookingConfirmed,
		ActionCancel:  models.BookingCancelled,
	},
	models.BookingConfirmed: {
		ActionComplete: models.BookingCompleted,
		ActionNoShow:   models.BookingNoShow,
		ActionCancel:   models.BookingCancelled,
	},
}

// LifecycleManager validates status transitions.
type LifecycleManager struct{}

// Next returns the status reached by applying action to current, or
// TransitionError when the transition is not part of the state machine.
func (LifecycleManager) Next(current models.BookingStatus, action Action) (models.BookingStatus, error) {
	if reachable, ok := transitions[current]; ok {
		if next, ok := reachable[action]; ok {
			return next, nil
		}
	}
	return "", &TransitionError{From: current, Action: action}
}

// Allowed reports whether the actor may request the action on a booking in
// the given status. Providers drive the full lifecycle; customers may only
// cancel while the booking is still pending.
func (LifecycleManager) Allowed(actor models.Actor, current models.BookingStatus, action Action) bool {
	switch actor {
	case models.ActorProvider:
		return true
	case models.ActorCustomer:
		return action == ActionCancel && current == models.BookingPending
	}
	return false
}

// ValidAction reports whether s names a known transition action.
func ValidAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionConfirm, ActionCancel, ActionComplete, ActionNoShow:
		return Action(s), true
	}
	return "", false
}
