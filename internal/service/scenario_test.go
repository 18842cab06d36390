package service

import (
	"testing"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// End-to-end walk through one company's week: the admin publishes a schedule,
// employees book until a cell fills, two of them trade shifts and a time-off
// request goes through review.
func TestSchedulingLifecycle(t *testing.T) {
	f := newFixture()

	created, err := f.schedule.CreateSchedule(f.admin.ID, 1, &CreateScheduleInput{
		Title:  "Night shift",
		Repeat: true,
		Availability: []DemandDayInput{
			{
				Day: "MONDAY",
				Data: []DemandSlotInput{
					{Time: "10:00 PM - 6:00 AM", StartTime: "10:00 PM", EndTime: "6:00 AM", UserCount: 2},
				},
			},
			{
				Day: "THURSDAY",
				Data: []DemandSlotInput{
					{Time: "10:00 PM - 6:00 AM", StartTime: "10:00 PM", EndTime: "6:00 AM", UserCount: 1},
				},
			},
		},
	})
	require.NoError(t, err)

	_, err = f.schedule.PublishSchedule(1, created.ID, true)
	require.NoError(t, err)

	monday := created.Data[0].ID
	thursday := created.Data[1].ID

	// Employees can only see the published schedule.
	available, err := f.schedule.GetAvailableSchedules(f.alice.ID, 1, 10)
	require.NoError(t, err)
	schedules := available.Items.([]ScheduleView)
	require.Len(t, schedules, 1)
	require.Equal(t, created.ID, schedules[0].ID)

	// The Monday cell fills up at two workers.
	_, err = f.booking.JoinShift(f.alice.ID, monday, 12, 2025)
	require.NoError(t, err)
	_, err = f.booking.JoinShift(f.bob.ID, monday, 12, 2025)
	require.NoError(t, err)
	_, err = f.booking.JoinShift(f.carol.ID, monday, 12, 2025)
	requireKind(t, err, apperr.KindBadRequest)

	_, err = f.booking.JoinShift(f.carol.ID, thursday, 12, 2025)
	require.NoError(t, err)

	// Alice offers her Monday shift for Carol's Thursday one.
	aliceBookings := f.liveBookings(f.alice.ID, monday, 12, 2025)
	require.Len(t, aliceBookings, 1)
	carolBookings := f.liveBookings(f.carol.ID, thursday, 12, 2025)
	require.Len(t, carolBookings, 1)

	swap, err := f.swap.RequestSwap(f.alice.ID, 1, aliceBookings[0].ID, carolBookings[0].ID)
	require.NoError(t, err)

	view, err := f.swap.AcceptOrRejectSwap(f.carol.ID, 1, swap.ID, true)
	require.NoError(t, err)
	require.Equal(t, domain.SwapApproved, view.Status)

	require.Len(t, f.liveBookings(f.alice.ID, thursday, 12, 2025), 1)
	require.Len(t, f.liveBookings(f.carol.ID, monday, 12, 2025), 1)
	require.Empty(t, f.liveBookings(f.alice.ID, monday, 12, 2025))

	// The freed Monday slot stays at capacity because Carol took it over.
	workers, err := f.store.GetDemandWorkers(monday, 12, 2025)
	require.NoError(t, err)
	require.Len(t, workers, 2)

	// Bob files time off and the admin approves it.
	_, err = f.timeOff.RequestTimeOff(f.bob.ID, 1, validTimeOffInput())
	require.NoError(t, err)

	queue, err := f.timeOff.ViewCompanyRequests(f.admin.ID, 1, "", 1, 10)
	require.NoError(t, err)
	pending := queue.Items.([]TimeOffView)
	require.Len(t, pending, 1)

	_, err = f.timeOff.AcceptOrRejectRequest(f.admin.ID, 1, pending[0].ID, true)
	require.NoError(t, err)

	request, err := f.store.GetTimeOffByID(pending[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.TimeOffApproved, request.Status)

	// Three transitions notified someone: the swap request, its approval and
	// the time-off approval.
	require.Len(t, f.dispatcher.sent, 3)
}
