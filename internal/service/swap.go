package service

import (
	"database/sql"
	"errors"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/notify"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
)

// SwapService runs the two-party shift exchange negotiation.
type SwapService struct {
	users      UserStore
	periods    PeriodStore
	bookings   BookingStore
	swaps      SwapStore
	clock      timeslot.Clock
	dispatcher notify.Dispatcher
}

func NewSwapService(users UserStore, periods PeriodStore, bookings BookingStore, swaps SwapStore, clock timeslot.Clock, dispatcher notify.Dispatcher) *SwapService {
	return &SwapService{
		users:      users,
		periods:    periods,
		bookings:   bookings,
		swaps:      swaps,
		clock:      clock,
		dispatcher: dispatcher,
	}
}

// RequestSwap opens a PENDING swap offering the caller's booking for a
// colleague's. Both shifts must still lie in the bookable window, and at most
// one swap may exist per unordered pair of bookings.
func (s *SwapService) RequestSwap(userID, companyID, ownShiftID, targetShiftID int64) (*domain.ShiftSwap, error) {
	user, err := s.getCompanyUser(userID, companyID)
	if err != nil {
		return nil, err
	}

	ownShift, err := s.bookings.GetBookingByID(ownShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Your shift does not exist")
		}
		return nil, err
	}
	if ownShift.UserID != userID || ownShift.CompanyID != companyID {
		return nil, apperr.Forbidden("You are not authorized to perform this action")
	}

	targetShift, err := s.bookings.GetBookingByID(targetShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Requested shift does not exist")
		}
		return nil, err
	}
	if targetShift.CompanyID != companyID {
		return nil, apperr.NotFound("Requested shift does not exist")
	}
	if targetShift.UserID == userID {
		return nil, apperr.BadRequest("You cannot swap your own shift")
	}

	now := s.clock.Now()
	ownDemand, err := s.demandOf(ownShift)
	if err != nil {
		return nil, err
	}
	if err := timeslot.AssertBookableWindow(now, ownDemand.StartTime, ownShift.Year, ownShift.Week, ownDemand.WeekDay); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if ownDemand.MaxHoursBefore > 0 {
		projected, err := timeslot.ProjectShiftTime(ownDemand.StartTime, ownShift.Year, ownShift.Week, ownDemand.WeekDay)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		if timeslot.HourDifference(now, projected) < float64(ownDemand.MaxHoursBefore) {
			return nil, apperr.BadRequest("Swap window closed, shift starts too soon")
		}
	}

	targetDemand, err := s.demandOf(targetShift)
	if err != nil {
		return nil, err
	}
	if err := timeslot.AssertBookableWindow(now, targetDemand.StartTime, targetShift.Year, targetShift.Week, targetDemand.WeekDay); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	// The requester may already hold a live booking on the target cell for
	// the same week, in which case the exchange would double-book them.
	workers, err := s.bookings.GetDemandWorkers(targetShift.DemandID, targetShift.Week, targetShift.Year)
	if err != nil {
		return nil, err
	}
	for _, worker := range workers {
		if worker.UserID == userID {
			return nil, apperr.Conflict("You are already booked for the requested shift")
		}
	}

	swap := &domain.ShiftSwap{
		CompanyID:        companyID,
		RequesterID:      userID,
		ReceiverID:       targetShift.UserID,
		RequesterShiftID: ownShift.ID,
		ReceiverShiftID:  targetShift.ID,
	}
	if err := s.swaps.CreateSwap(swap); err != nil {
		if errors.Is(err, domain.ErrSwapExists) {
			return nil, apperr.Conflict("A swap request already exists for these shifts")
		}
		return nil, err
	}

	s.dispatcher.Dispatch(domain.Notification{
		UserID:        targetShift.UserID,
		TriggerUserID: userID,
		TagID:         swap.ID,
		Type:          domain.NotificationShiftSwap,
		Activity:      user.ShortName() + " is requesting a shift swap",
	})

	return swap, nil
}

// AcceptOrRejectSwap resolves a PENDING swap. Only the receiver may resolve
// it, and only once; on approval the exchange commits atomically.
func (s *SwapService) AcceptOrRejectSwap(userID, companyID, swapID int64, approve bool) (*SwapView, error) {
	user, err := s.getCompanyUser(userID, companyID)
	if err != nil {
		return nil, err
	}

	swap, err := s.swaps.GetSwapByID(swapID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No swap record found")
		}
		return nil, err
	}
	if swap.CompanyID != companyID {
		return nil, apperr.NotFound("No swap record found")
	}
	if swap.ReceiverID != userID {
		return nil, apperr.Forbidden("Only the receiver can resolve this swap")
	}
	if swap.Status != domain.SwapPending {
		return nil, apperr.Conflict("This swap has already been resolved")
	}

	if err := s.swaps.ResolveSwap(swap, approve); err != nil {
		if errors.Is(err, domain.ErrSwapResolved) {
			return nil, apperr.Conflict("This swap has already been resolved")
		}
		return nil, err
	}

	activity := user.ShortName() + " rejected your swap request"
	if approve {
		activity = user.ShortName() + " accepted your swap request"
	}
	s.dispatcher.Dispatch(domain.Notification{
		UserID:        swap.RequesterID,
		TriggerUserID: userID,
		TagID:         swap.ID,
		Type:          domain.NotificationShiftSwap,
		Activity:      activity,
	})

	return s.swapView(swap)
}

// ViewSwapDetails shows both sides of a swap to an involved party or an admin.
func (s *SwapService) ViewSwapDetails(userID, companyID, swapID int64) (*SwapView, error) {
	user, err := s.getCompanyUser(userID, companyID)
	if err != nil {
		return nil, err
	}

	swap, err := s.swaps.GetSwapByID(swapID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No swap record found")
		}
		return nil, err
	}
	if swap.CompanyID != companyID {
		return nil, apperr.NotFound("No swap record found")
	}
	if !user.IsAdmin() && userID != swap.RequesterID && userID != swap.ReceiverID {
		return nil, apperr.Forbidden("You are not authorized to view this swap")
	}

	return s.swapView(swap)
}

// GetAvailableSwaps lists colleagues' upcoming bookings the caller may offer
// a swap against. The caller's own bookings are excluded at the store, so
// pages stay full and the total reflects only swappable shifts.
func (s *SwapService) GetAvailableSwaps(userID, companyID int64, page, limit int) (*Paginated, error) {
	if _, err := s.getCompanyUser(userID, companyID); err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	nowYear, nowWeek := s.clock.Now().ISOWeek()
	bookings, total, err := s.bookings.GetCompanyUpcomingBookings(companyID, userID, nowWeek, nowYear, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	shifts := make([]EmployeeShiftView, 0, len(bookings))
	for _, b := range bookings {
		if b.User == nil {
			continue
		}
		shifts = append(shifts, EmployeeShiftView{
			BookingID: b.ID,
			User:      userView(b.User),
			Shift:     userShiftView(b),
		})
	}
	return paginate(shifts, page, limit, total), nil
}

// GetUserSwaps lists the caller's swaps, either ones they sent or ones they
// received.
func (s *SwapService) GetUserSwaps(userID, companyID int64, box string, page, limit int) (*Paginated, error) {
	if _, err := s.getCompanyUser(userID, companyID); err != nil {
		return nil, err
	}
	if box == "" {
		box = "sent"
	}
	if box != "sent" && box != "received" {
		return nil, apperr.BadRequest("Status must be \"sent\" or \"received\"")
	}
	page, limit = normalizePage(page, limit)

	swaps, total, err := s.swaps.GetUserSwaps(userID, box == "sent", limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	views := make([]SwapView, 0, len(swaps))
	for _, swap := range swaps {
		view, err := s.swapView(swap)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return paginate(views, page, limit, total), nil
}

func (s *SwapService) getCompanyUser(userID, companyID int64) (*domain.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}
	if user.CompanyID != companyID {
		return nil, apperr.NotFound("User does not exist")
	}
	return user, nil
}

func (s *SwapService) demandOf(booking *domain.ShiftBooking) (*domain.DemandDetails, error) {
	demand, err := s.periods.GetDemandByID(booking.DemandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Schedule not found")
		}
		return nil, err
	}
	return demand, nil
}

func (s *SwapService) swapView(swap *domain.ShiftSwap) (*SwapView, error) {
	offered, err := s.swapShiftView(swap.Requester, swap.RequesterShift)
	if err != nil {
		return nil, err
	}
	requested, err := s.swapShiftView(swap.Receiver, swap.ReceiverShift)
	if err != nil {
		return nil, err
	}

	return &SwapView{
		ID:             swap.ID,
		Status:         swap.Status,
		CreatedAt:      swap.CreatedAt,
		OfferedShift:   *offered,
		RequestedShift: *requested,
	}, nil
}

func (s *SwapService) swapShiftView(user *domain.User, booking *domain.ShiftBooking) (*SwapShiftView, error) {
	demand, err := s.demandOf(booking)
	if err != nil {
		return nil, err
	}
	return &SwapShiftView{
		BookingID: booking.ID,
		PeriodID:  booking.SchedulePeriodID,
		User:      userView(user),
		Day:       demand.WeekDay,
		TimeFrame: demand.TimeFrame,
		StartTime: demand.StartTime,
		EndTime:   demand.EndTime,
		Week:      booking.Week,
		Year:      booking.Year,
	}, nil
}
