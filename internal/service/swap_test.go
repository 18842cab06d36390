package service

import (
	"testing"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRequestSwap(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SwapPending, swap.Status)
	require.Equal(t, f.alice.ID, swap.RequesterID)
	require.Equal(t, f.bob.ID, swap.ReceiverID)

	require.Len(t, f.dispatcher.sent, 1)
	notification := f.dispatcher.sent[0]
	require.Equal(t, f.bob.ID, notification.UserID)
	require.Equal(t, f.alice.ID, notification.TriggerUserID)
	require.Equal(t, domain.NotificationShiftSwap, notification.Type)
	require.Equal(t, "Alice J. is requesting a shift swap", notification.Activity)
}

func TestRequestSwapPairUniqueness(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	_, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)

	_, err = f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	requireKind(t, err, apperr.KindConflict)

	// The reverse direction counts as the same pair.
	_, err = f.swap.RequestSwap(f.bob.ID, 1, bobShift.ID, aliceShift.ID)
	requireKind(t, err, apperr.KindConflict)
}

func TestRequestSwapValidation(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	aliceFriday := f.mustBook(f.alice.ID, f.demandFri, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	t.Run("offering someone else's shift", func(t *testing.T) {
		_, err := f.swap.RequestSwap(f.carol.ID, 1, aliceShift.ID, bobShift.ID)
		requireKind(t, err, apperr.KindForbidden)
	})

	t.Run("targeting own shift", func(t *testing.T) {
		_, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, aliceFriday.ID)
		requireKind(t, err, apperr.KindBadRequest)
	})

	t.Run("missing shift", func(t *testing.T) {
		_, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, 9999)
		requireKind(t, err, apperr.KindNotFound)
	})

	t.Run("past shift", func(t *testing.T) {
		carolPast := f.mustBook(f.carol.ID, f.demandMon, 5, 2025)
		bobPast := f.mustBook(f.bob.ID, f.demandMon, 5, 2025)
		carolFuture := f.mustBook(f.carol.ID, f.demandTue, 14, 2025)

		_, err := f.swap.RequestSwap(f.carol.ID, 1, carolPast.ID, bobShift.ID)
		requireKind(t, err, apperr.KindBadRequest)

		_, err = f.swap.RequestSwap(f.carol.ID, 1, carolFuture.ID, bobPast.ID)
		requireKind(t, err, apperr.KindBadRequest)
	})

	t.Run("requester already booked on target cell", func(t *testing.T) {
		bobFriday := f.mustBook(f.bob.ID, f.demandFri, 12, 2025)

		// Alice already holds a Friday week-12 booking herself.
		_, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobFriday.ID)
		requireKind(t, err, apperr.KindConflict)
	})
}

func TestAcceptSwapExchange(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 13, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)
	f.dispatcher.sent = nil

	view, err := f.swap.AcceptOrRejectSwap(f.bob.ID, 1, swap.ID, true)
	require.NoError(t, err)
	require.Equal(t, domain.SwapApproved, view.Status)

	// Alice's offered booking is vacated and she takes over Bob's cell.
	require.NotNil(t, f.store.bookings[aliceShift.ID].DeletedAt)
	require.Len(t, f.liveBookings(f.alice.ID, f.demandTue, 13, 2025), 1)

	// Bob is booked onto Alice's cell.
	require.Len(t, f.liveBookings(f.bob.ID, f.demandMon, 12, 2025), 1)

	require.Len(t, f.dispatcher.sent, 1)
	notification := f.dispatcher.sent[0]
	require.Equal(t, f.alice.ID, notification.UserID)
	require.Equal(t, "Bob S. accepted your swap request", notification.Activity)
}

func TestRejectSwapLeavesBookings(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)
	f.dispatcher.sent = nil

	view, err := f.swap.AcceptOrRejectSwap(f.bob.ID, 1, swap.ID, false)
	require.NoError(t, err)
	require.Equal(t, domain.SwapDenied, view.Status)

	require.Nil(t, f.store.bookings[aliceShift.ID].DeletedAt)
	require.Nil(t, f.store.bookings[bobShift.ID].DeletedAt)
	require.Empty(t, f.liveBookings(f.alice.ID, f.demandTue, 12, 2025))
	require.Empty(t, f.liveBookings(f.bob.ID, f.demandMon, 12, 2025))

	require.Len(t, f.dispatcher.sent, 1)
	require.Equal(t, "Bob S. rejected your swap request", f.dispatcher.sent[0].Activity)
}

func TestResolveSwapIsTerminal(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)

	_, err = f.swap.AcceptOrRejectSwap(f.bob.ID, 1, swap.ID, false)
	require.NoError(t, err)

	// Neither a repeat denial nor a late approval goes through.
	_, err = f.swap.AcceptOrRejectSwap(f.bob.ID, 1, swap.ID, false)
	requireKind(t, err, apperr.KindConflict)
	_, err = f.swap.AcceptOrRejectSwap(f.bob.ID, 1, swap.ID, true)
	requireKind(t, err, apperr.KindConflict)
}

func TestResolveSwapReceiverOnly(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)

	_, err = f.swap.AcceptOrRejectSwap(f.alice.ID, 1, swap.ID, true)
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.swap.AcceptOrRejectSwap(f.admin.ID, 1, swap.ID, true)
	requireKind(t, err, apperr.KindForbidden)
}

func TestViewSwapDetailsAuthorization(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)

	for _, userID := range []int64{f.alice.ID, f.bob.ID, f.admin.ID} {
		view, err := f.swap.ViewSwapDetails(userID, 1, swap.ID)
		require.NoError(t, err)
		require.Equal(t, aliceShift.ID, view.OfferedShift.BookingID)
		require.Equal(t, bobShift.ID, view.RequestedShift.BookingID)
	}

	_, err = f.swap.ViewSwapDetails(f.carol.ID, 1, swap.ID)
	requireKind(t, err, apperr.KindForbidden)

	_, err = f.swap.ViewSwapDetails(f.outsider.ID, 2, swap.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestGetAvailableSwapsExcludesOwnShifts(t *testing.T) {
	f := newFixture()
	f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)
	carolShift := f.mustBook(f.carol.ID, f.demandFri, 12, 2025)

	result, err := f.swap.GetAvailableSwaps(f.alice.ID, 1, 1, 10)
	require.NoError(t, err)

	shifts := result.Items.([]EmployeeShiftView)
	require.Len(t, shifts, 2)
	ids := []int64{shifts[0].BookingID, shifts[1].BookingID}
	require.ElementsMatch(t, []int64{bobShift.ID, carolShift.ID}, ids)
}

// Excluding the caller's own bookings happens at the store, so short pages
// cannot hide swappable shifts and the total counts only colleagues' rows.
func TestGetAvailableSwapsPagination(t *testing.T) {
	f := newFixture()
	f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	f.mustBook(f.bob.ID, f.demandMon, 12, 2025)
	f.mustBook(f.bob.ID, f.demandFri, 12, 2025)
	f.mustBook(f.carol.ID, f.demandTue, 12, 2025)

	result, err := f.swap.GetAvailableSwaps(f.alice.ID, 1, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, 2, result.LastPage)
	shifts := result.Items.([]EmployeeShiftView)
	require.Len(t, shifts, 2)
	for _, shift := range shifts {
		require.NotEqual(t, f.alice.ID, shift.User.ID)
	}

	result, err = f.swap.GetAvailableSwaps(f.alice.ID, 1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Len(t, result.Items.([]EmployeeShiftView), 1)
}

func TestGetUserSwaps(t *testing.T) {
	f := newFixture()
	aliceShift := f.mustBook(f.alice.ID, f.demandMon, 12, 2025)
	bobShift := f.mustBook(f.bob.ID, f.demandTue, 12, 2025)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceShift.ID, bobShift.ID)
	require.NoError(t, err)

	sent, err := f.swap.GetUserSwaps(f.alice.ID, 1, "sent", 1, 10)
	require.NoError(t, err)
	require.Len(t, sent.Items.([]SwapView), 1)
	require.Equal(t, swap.ID, sent.Items.([]SwapView)[0].ID)

	received, err := f.swap.GetUserSwaps(f.alice.ID, 1, "received", 1, 10)
	require.NoError(t, err)
	require.Empty(t, received.Items.([]SwapView))

	received, err = f.swap.GetUserSwaps(f.bob.ID, 1, "received", 1, 10)
	require.NoError(t, err)
	require.Len(t, received.Items.([]SwapView), 1)

	_, err = f.swap.GetUserSwaps(f.alice.ID, 1, "archived", 1, 10)
	requireKind(t, err, apperr.KindBadRequest)
}
