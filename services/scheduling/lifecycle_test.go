package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func TestLifecycleTransitions(t *testing.T) {
	var lm LifecycleManager

	cases := []struct {
		from   models.BookingStatus
		action Action
		want   models.BookingStatus
		ok     bool
	}{
		{models.BookingPending, ActionConfirm, models.BookingConfirmed, true},
		{models.BookingPending, ActionCancel, models.BookingCancelled, true},
		{models.BookingPending, ActionComplete, "", false},
		{models.BookingPending, ActionNoShow, "", false},
		{models.BookingConfirmed, ActionComplete, models.BookingCompleted, true},
		{models.BookingConfirmed, ActionCancel, models.BookingCancelled, true},
		{models.BookingConfirmed, ActionNoShow, models.BookingNoShow, true},
		{models.BookingConfirmed, ActionConfirm, "", false},
		{models.BookingCompleted, ActionCancel, "", false},
		{models.BookingCancelled, ActionConfirm, "", false},
		{models.BookingNoShow, ActionComplete, "", false},
	}

	for _, tc := range cases {
		next, err := lm.Next(tc.from, tc.action)
		if tc.ok {
			require.NoError(t, err, "%s + %s", tc.from, tc.action)
			assert.Equal(t, tc.want, next)
		} else {
			var terr *TransitionError
			require.ErrorAs(t, err, &terr, "%s + %s", tc.from, tc.action)
			assert.Equal(t, tc.from, terr.From)
			assert.Equal(t, tc.action, terr.Action)
		}
	}
}

func TestLifecycleActorPermissions(t *testing.T) {
	var lm LifecycleManager

	assert.True(t, lm.Allowed(models.ActorProvider, models.BookingPending, ActionConfirm))
	assert.True(t, lm.Allowed(models.ActorProvider, models.BookingConfirmed, ActionNoShow))

	assert.True(t, lm.Allowed(models.ActorCustomer, models.BookingPending, ActionCancel))
	assert.False(t, lm.Allowed(models.ActorCustomer, models.BookingConfirmed, ActionCancel))
	assert.False(t, lm.Allowed(models.ActorCustomer, models.BookingPending, ActionConfirm))
	assert.False(t, lm.Allowed(models.Actor("unknown"), models.BookingPending, ActionCancel))
}

func TestValidAction(t *testing.T) {
	for _, s := range []string{"confirm", "cancel", "complete", "no_show"} {
		_, ok := ValidAction(s)
		assert.True(t, ok, s)
	}
	_, ok := ValidAction("reschedule")
	assert.False(t, ok)
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, models.BookingPending.Terminal())
	assert.False(t, models.BookingConfirmed.Terminal())
	assert.True(t, models.BookingCompleted.Terminal())
	assert.True(t, models.BookingCancelled.Terminal())
	assert.True(t, models.BookingNoShow.Terminal())
}
