// Package service holds the scheduling engines: shift booking, swap
// negotiation, time off and schedule-period management. Engines receive
// their collaborators through constructors as narrow interfaces; the
// composition root in cmd/api wires the postgres repository, the system
// clock and the AMQP dispatcher into them.
package service

import (
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

type UserStore interface {
	GetUserByID(id int64) (*domain.User, error)
}

// Listing store methods return the full matching row count alongside the
// requested page so the envelope can report real totals.

type PeriodStore interface {
	CreateSchedulePeriod(period *domain.SchedulePeriod) error
	GetSchedulePeriodByID(id int64) (*domain.SchedulePeriod, error)
	GetCompanySchedules(companyID int64, publishedOnly bool, limit, offset int) ([]*domain.SchedulePeriod, int, error)
	GetPublishedScheduleID(companyID int64) (int64, error)
	SetSchedulePublished(id int64, published bool) error
	SoftDeleteSchedulePeriod(id int64) error
	GetDemandByID(id int64) (*domain.DemandDetails, error)
}

type BookingStore interface {
	// CreateBookingGuarded must serialize the capacity check and the insert
	// per demand cell; it returns domain.ErrDuplicateBooking or
	// domain.ErrCapacityExceeded when an invariant would be violated.
	CreateBookingGuarded(booking *domain.ShiftBooking, quantity int32) error
	GetBookingByID(id int64) (*domain.ShiftBooking, error)
	GetUserUpcomingBookings(userID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error)
	GetDemandWorkers(demandID int64, week, year int) ([]*domain.BookingWorker, error)
	GetCompanyUpcomingBookings(companyID, excludeUserID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error)
}

type SwapStore interface {
	// CreateSwap must reject a duplicate for the unordered booking pair
	// with domain.ErrSwapExists.
	CreateSwap(swap *domain.ShiftSwap) error
	GetSwapByID(id int64) (*domain.ShiftSwap, error)
	GetUserSwaps(userID int64, sent bool, limit, offset int) ([]*domain.ShiftSwap, int, error)
	// ResolveSwap must compare-and-swap the PENDING status and, on
	// approval, commit the exchange atomically. A lost race returns
	// domain.ErrSwapResolved.
	ResolveSwap(swap *domain.ShiftSwap, approve bool) error
}

type TimeOffStore interface {
	CreateTimeOff(request *domain.TimeOff) error
	GetTimeOffByID(id int64) (*domain.TimeOff, error)
	GetUserTimeOff(userID int64, limit, offset int) ([]*domain.TimeOff, int, error)
	GetCompanyTimeOffByStatus(companyID int64, status domain.TimeOffStatus, limit, offset int) ([]*domain.TimeOff, int, error)
	UpdateTimeOff(request *domain.TimeOff) error
	SetTimeOffStatus(id int64, status domain.TimeOffStatus) error
}

// Paginated is the list envelope shared by every listing operation.
type Paginated struct {
	Items    any `json:"items"`
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	Total    int `json:"total"`
	LastPage int `json:"lastPage"`
}

func paginate(items any, page, limit, total int) *Paginated {
	lastPage := total / limit
	if total%limit != 0 {
		lastPage++
	}
	if lastPage == 0 {
		lastPage = 1
	}
	return &Paginated{
		Items:    items,
		Page:     page,
		Limit:    limit,
		Total:    total,
		LastPage: lastPage,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
