package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ItemStatus
		to      ItemStatus
		allowed bool
	}{
		{"pending to accepted", ItemPending, ItemAccepted, true},
		{"pending to rejected", ItemPending, ItemRejected, true},
		{"pending to ready skips accepted", ItemPending, ItemReady, false},
		{"pending to delivered skips everything", ItemPending, ItemDelivered, false},
		{"accepted to ready", ItemAccepted, ItemReady, true},
		{"accepted to rejected", ItemAccepted, ItemRejected, true},
		{"accepted to cancelled", ItemAccepted, ItemCancelled, true},
		{"accepted back to pending", ItemAccepted, ItemPending, false},
		{"ready to in_transit", ItemReady, ItemInTransit, true},
		{"ready to cancelled", ItemReady, ItemCancelled, false},
		{"in_transit to delivered", ItemInTransit, ItemDelivered, true},
		{"delivered is terminal", ItemDelivered, ItemPending, false},
		{"rejected is terminal", ItemRejected, ItemAccepted, false},
		{"cancelled is terminal", ItemCancelled, ItemPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestItemStatusTerminal(t *testing.T) {
	terminal := []ItemStatus{ItemDelivered, ItemRejected, ItemCancelled}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), s)
		for _, next := range []ItemStatus{ItemPending, ItemAccepted, ItemReady, ItemInTransit, ItemDelivered, ItemRejected, ItemCancelled} {
			assert.False(t, s.CanTransitionTo(next), "%s -> %s must be rejected", s, next)
		}
	}

	for _, s := range []ItemStatus{ItemPending, ItemAccepted, ItemReady, ItemInTransit} {
		assert.False(t, s.Terminal(), s)
	}
}

func TestParseItemStatus(t *testing.T) {
	parsed, err := ParseItemStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, ItemInTransit, parsed)

	_, err = ParseItemStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSubOrderStatusTransitions(t *testing.T) {
	// Supplier flows may skip intermediate states.
	assert.True(t, SubOrderPending.CanTransitionTo(SubOrderDelivered))
	assert.True(t, SubOrderAccepted.CanTransitionTo(SubOrderInTransit))
	assert.True(t, SubOrderAccepted.CanTransitionTo(SubOrderAccepted))

	for _, s := range []SubOrderStatus{SubOrderDelivered, SubOrderRejected, SubOrderCancelled} {
		assert.True(t, s.Terminal())
		assert.False(t, s.CanTransitionTo(SubOrderPending))
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		status   string
		want     SimpleStatus
	}{
		{"explicit simple status wins", "delivered", "pending", SimpleDelivered},
		{"explicit in_progress wins", "in_progress", "delivered", SimpleInProgress},
		{"unknown explicit falls through", "weird", "delivered", SimpleDelivered},
		{"delivered", "", "delivered", SimpleDelivered},
		{"cancelled", "", "cancelled", SimpleCancelled},
		{"partially_delivered buckets to in_progress", "", "partially_delivered", SimpleInProgress},
		{"in_progress", "", "in_progress", SimpleInProgress},
		{"pending", "", "pending", SimplePending},
		{"unknown status defaults to pending", "", "on_hold", SimplePending},
		{"empty everything defaults to pending", "", "", SimplePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simplify(tt.explicit, tt.status))
		})
	}
}

// Simplify must be total: any input lands in one of the four buckets.
func TestSimplifyTotal(t *testing.T) {
	inputs := []string{"", "pending", "accepted", "ready", "in_transit", "delivered",
		"rejected", "cancelled", "partially_delivered", "in_progress", "garbage", "  ", "DELIVERED"}

	buckets := map[SimpleStatus]bool{
		SimplePending:    true,
		SimpleInProgress: true,
		SimpleDelivered:  true,
		SimpleCancelled:  true,
	}

	for _, explicit := range inputs {
		for _, st := range inputs {
			got := Simplify(explicit, st)
			assert.True(t, buckets[got], "Simplify(%q, %q) = %q", explicit, st, got)
		}
	}
}
