package service

import (
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

// View types returned to the handler layer. Engines never hand out raw
// persistence rows for listing endpoints; they assemble these instead.

type UserView struct {
	ID            int64           `json:"id"`
	FullName      string          `json:"fullName"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Avatar        string          `json:"avatar"`
	UserType      domain.UserType `json:"userType"`
	EmailVerified bool            `json:"emailVerified"`
}

func userView(u *domain.User) UserView {
	return UserView{
		ID:            u.ID,
		FullName:      u.FullName(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Avatar:        u.Avatar,
		UserType:      u.UserType,
		EmailVerified: u.EmailVerified,
	}
}

// DemandStatusAvailable / DemandStatusBooked label a demand cell in the
// week-details view depending on remaining capacity.
const (
	DemandStatusAvailable = "Available"
	DemandStatusBooked    = "Booked"
)

func demandStatus(booked int, quantity int32) string {
	if booked >= int(quantity) {
		return DemandStatusBooked
	}
	return DemandStatusAvailable
}

// DemandView is one cell of a schedule template.
type DemandView struct {
	ID            int64          `json:"id"`
	Day           domain.Weekday `json:"day"`
	TimeFrame     string         `json:"timeFrame"`
	StartTime     string         `json:"startTime"`
	EndTime       string         `json:"endTime"`
	NeededWorkers int32          `json:"neededWorkers"`
}

func demandView(d *domain.SchedulePeriodDemand) DemandView {
	return DemandView{
		ID:            d.ID,
		Day:           d.WeekDay,
		TimeFrame:     d.TimeFrame,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		NeededWorkers: d.WorkerQuantity,
	}
}

// DemandWeekView is a cell anchored to one concrete (week, year) with its
// current occupancy.
type DemandWeekView struct {
	DemandView
	AvailableWorkers int                     `json:"availableWorkers"`
	Status           string                  `json:"status"`
	Workers          []*domain.BookingWorker `json:"workers"`
}

type ScheduleView struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	IsPublished    bool         `json:"isPublished"`
	Repeat         bool         `json:"repeat"`
	MaxHoursBefore int32        `json:"maxHoursBefore"`
	MaxHoursAfter  int32        `json:"maxHoursAfter"`
	CreatedAt      time.Time    `json:"createdAt"`
	Data           []DemandView `json:"data"`
}

type ScheduleDetailsView struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	IsPublished bool             `json:"isPublished"`
	Repeat      bool             `json:"repeat"`
	Week        int              `json:"week"`
	Year        int              `json:"year"`
	Data        []DemandWeekView `json:"data"`
}

// UserShiftView is one row of an employee's upcoming-shifts list.
type UserShiftView struct {
	BookingID  int64          `json:"userScheduleID"`
	PeriodID   int64          `json:"periodID"`
	DemandID   int64          `json:"periodDemandID"`
	PeriodName string         `json:"periodName"`
	Day        domain.Weekday `json:"day"`
	TimeFrame  string         `json:"timeFrame"`
	StartTime  string         `json:"startTime"`
	EndTime    string         `json:"endTime"`
	Week       int            `json:"week"`
	Year       int            `json:"year"`
}

func userShiftView(b *domain.BookingDetails) UserShiftView {
	return UserShiftView{
		BookingID:  b.ID,
		PeriodID:   b.SchedulePeriodID,
		DemandID:   b.DemandID,
		PeriodName: b.PeriodName,
		Day:        b.WeekDay,
		TimeFrame:  b.TimeFrame,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Week:       b.Week,
		Year:       b.Year,
	}
}

// EmployeeShiftView is one row of the available-swaps list: a colleague's
// booking the caller may offer a swap against.
type EmployeeShiftView struct {
	BookingID int64         `json:"userScheduleID"`
	User      UserView      `json:"user"`
	Shift     UserShiftView `json:"shift"`
}

// SwapShiftView is one side of a swap in the details view.
type SwapShiftView struct {
	BookingID int64          `json:"userScheduleID"`
	PeriodID  int64          `json:"periodID"`
	User      UserView       `json:"user"`
	Day       domain.Weekday `json:"day"`
	TimeFrame string         `json:"timeFrame"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Week      int            `json:"week"`
	Year      int            `json:"year"`
}

type SwapView struct {
	ID             int64             `json:"id"`
	Status         domain.SwapStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	OfferedShift   SwapShiftView     `json:"offeredShift"`
	RequestedShift SwapShiftView     `json:"requestedShift"`
}

type TimeOffView struct {
	ID        int64                `json:"id"`
	Type      string               `json:"type"`
	Reason    string               `json:"reason"`
	TimeFrame string               `json:"timeFrame"`
	StartDate time.Time            `json:"startDate"`
	EndDate   time.Time            `json:"endDate"`
	Status    domain.TimeOffStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	User      *UserView            `json:"user,omitempty"`
}

func timeOffView(t *domain.TimeOff) TimeOffView {
	view := TimeOffView{
		ID:        t.ID,
		Type:      t.Type,
		Reason:    t.Reason,
		TimeFrame: t.TimeFrame,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
	if t.User != nil {
		u := userView(t.User)
		view.User = &u
	}
	return view
}
