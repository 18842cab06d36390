package domain

import "time"

// ShiftBooking assigns one employee to one unit of a demand cell's capacity
// for a concrete (ISO week, year). Vacated bookings are soft-deleted, never
// removed, so swap history stays auditable.
type ShiftBooking struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userID"`
	CompanyID        int64      `json:"companyID"`
	SchedulePeriodID int64      `json:"periodID"`
	DemandID         int64      `json:"periodDemandID"`
	Week             int        `json:"week"`
	Year             int        `json:"year"`
	CreatedAt        time.Time  `json:"createdAt"`
	DeletedAt        *time.Time `json:"-"`
}

// BookingDetails is a booking joined with its demand and period for the
// upcoming-shifts and available-swaps views.
type BookingDetails struct {
	ShiftBooking
	WeekDay    Weekday `json:"weekDay"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	TimeFrame  string  `json:"timeFrame"`
	PeriodName string  `json:"periodName"`
	User       *User   `json:"user,omitempty"`
}

// BookingWorker is one booked employee in a demand-cell view.
type BookingWorker struct {
	BookingID int64  `json:"userScheduleID"`
	UserID    int64  `json:"userID"`
	Avatar    string `json:"avatar"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Week      int    `json:"-"`
	Year      int    `json:"-"`
}
