package service

import (
	"database/sql"
	"errors"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
)

// BookingService lets employees claim capacity on published demand cells and
// browse their upcoming shifts.
type BookingService struct {
	users    UserStore
	periods  PeriodStore
	bookings BookingStore
	clock    timeslot.Clock
}

func NewBookingService(users UserStore, periods PeriodStore, bookings BookingStore, clock timeslot.Clock) *BookingService {
	return &BookingService{
		users:    users,
		periods:  periods,
		bookings: bookings,
		clock:    clock,
	}
}

// JoinShift books the user onto a demand cell for the given (week, year).
// Week and year default to the current ISO week when unset. The capacity and
// duplicate checks run serialized inside the store so two concurrent joins on
// the last slot cannot both succeed.
func (s *BookingService) JoinShift(userID, demandID int64, week, year int) (*Paginated, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}

	demand, err := s.periods.GetDemandByID(demandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Schedule not found")
		}
		return nil, err
	}
	if demand.CompanyID != user.CompanyID || !demand.Published || demand.PeriodDeletedAt != nil {
		return nil, apperr.NotFound("Schedule not found")
	}

	now := s.clock.Now()
	nowYear, nowWeek := now.ISOWeek()
	if week < 1 {
		week = nowWeek
	}
	if year < 1 {
		year = nowYear
	}

	if err := timeslot.AssertBookableWindow(now, demand.StartTime, year, week, demand.WeekDay); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if demand.MaxHoursBefore > 0 {
		projected, err := timeslot.ProjectShiftTime(demand.StartTime, year, week, demand.WeekDay)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		if timeslot.HourDifference(now, projected) < float64(demand.MaxHoursBefore) {
			return nil, apperr.BadRequest("Booking closed, shift starts too soon")
		}
	}

	booking := &domain.ShiftBooking{
		UserID:           userID,
		CompanyID:        user.CompanyID,
		SchedulePeriodID: demand.SchedulePeriodID,
		DemandID:         demand.ID,
		Week:             week,
		Year:             year,
	}
	if err := s.bookings.CreateBookingGuarded(booking, demand.WorkerQuantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateBooking):
			return nil, apperr.Conflict("You are already booked for this shift")
		case errors.Is(err, domain.ErrCapacityExceeded):
			return nil, apperr.BadRequest("Shift is fully booked")
		default:
			return nil, err
		}
	}

	return s.GetUpcomingShifts(userID, 1, 10)
}

// GetUpcomingShifts lists the user's live bookings from the current ISO week
// onward, soonest first.
func (s *BookingService) GetUpcomingShifts(userID int64, page, limit int) (*Paginated, error) {
	page, limit = normalizePage(page, limit)

	nowYear, nowWeek := s.clock.Now().ISOWeek()
	bookings, total, err := s.bookings.GetUserUpcomingBookings(userID, nowWeek, nowYear, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	shifts := make([]UserShiftView, 0, len(bookings))
	for _, b := range bookings {
		shifts = append(shifts, userShiftView(b))
	}
	return paginate(shifts, page, limit, total), nil
}

// GetDemandForWeek returns one demand cell with its occupancy for the current
// ISO week, as shown before joining.
func (s *BookingService) GetDemandForWeek(userID, demandID int64) (*DemandWeekView, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}

	demand, err := s.periods.GetDemandByID(demandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Schedule not found")
		}
		return nil, err
	}
	if demand.CompanyID != user.CompanyID {
		return nil, apperr.NotFound("Schedule not found")
	}

	nowYear, nowWeek := s.clock.Now().ISOWeek()
	workers, err := s.bookings.GetDemandWorkers(demandID, nowWeek, nowYear)
	if err != nil {
		return nil, err
	}

	return &DemandWeekView{
		DemandView:       demandView(&demand.SchedulePeriodDemand),
		AvailableWorkers: len(workers),
		Status:           demandStatus(len(workers), demand.WorkerQuantity),
		Workers:          workers,
	}, nil
}
