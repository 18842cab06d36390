package domain

import "time"

// SchedulePeriod is a named, repeatable weekly shift template owned by one
// company. At most one period per company is published at a time; publishing
// one unpublishes the previous.
type SchedulePeriod struct {
	ID             int64                  `json:"id"`
	CompanyID      int64                  `json:"companyID"`
	CreatedBy      int64                  `json:"createdBy"`
	PeriodName     string                 `json:"title"`
	Repeat         bool                   `json:"repeat"`
	Published      bool                   `json:"isPublished"`
	MaxHoursBefore int32                  `json:"maxHoursBefore"`
	MaxHoursAfter  int32                  `json:"maxHoursAfter"`
	Demands        []SchedulePeriodDemand `json:"demands,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	DeletedAt      *time.Time             `json:"-"`
}

// SchedulePeriodDemand is one (weekday, timeslot) cell within a period.
// Start and end times are clock strings ("9:00 AM"), not timestamps: the
// template repeats every week and is anchored to a calendar only when booked.
type SchedulePeriodDemand struct {
	ID               int64   `json:"id"`
	SchedulePeriodID int64   `json:"schedulePeriodID"`
	WeekDay          Weekday `json:"day"`
	TimeFrame        string  `json:"timeFrame"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	WorkerQuantity   int32   `json:"neededWorkers"`
}

// DemandDetails is a demand cell joined with the parent period fields the
// booking engine validates against.
type DemandDetails struct {
	SchedulePeriodDemand
	CompanyID       int64
	Published       bool
	MaxHoursBefore  int32
	PeriodName      string
	PeriodCreatedAt time.Time
	PeriodDeletedAt *time.Time
}
