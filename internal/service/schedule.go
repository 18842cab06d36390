package service

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
)

// ScheduleService manages schedule-period templates: creation, publication
// and the per-week occupancy view.
type ScheduleService struct {
	users    UserStore
	periods  PeriodStore
	bookings BookingStore
	clock    timeslot.Clock
}

func NewScheduleService(users UserStore, periods PeriodStore, bookings BookingStore, clock timeslot.Clock) *ScheduleService {
	return &ScheduleService{
		users:    users,
		periods:  periods,
		bookings: bookings,
		clock:    clock,
	}
}

// DemandSlotInput is one timeslot under a day in a create-schedule request.
type DemandSlotInput struct {
	Time      string `json:"time" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	UserCount int32  `json:"userCount" validate:"required,min=1"`
}

// DemandDayInput groups the slots of one weekday.
type DemandDayInput struct {
	Day  string            `json:"day" validate:"required"`
	Data []DemandSlotInput `json:"data" validate:"required,dive"`
}

type CreateScheduleInput struct {
	Title          string           `json:"title" validate:"required"`
	Repeat         bool             `json:"repeat"`
	MaxHoursBefore int32            `json:"maxHoursBefore" validate:"min=0"`
	MaxHoursAfter  int32            `json:"maxHoursAfter" validate:"min=0"`
	Availability   []DemandDayInput `json:"availability" validate:"required,min=1,dive"`
}

// CreateSchedule persists a new unpublished period with its demand cells.
func (s *ScheduleService) CreateSchedule(userID, companyID int64, input *CreateScheduleInput) (*ScheduleView, error) {
	period := &domain.SchedulePeriod{
		CompanyID:      companyID,
		CreatedBy:      userID,
		PeriodName:     input.Title,
		Repeat:         input.Repeat,
		MaxHoursBefore: input.MaxHoursBefore,
		MaxHoursAfter:  input.MaxHoursAfter,
	}

	for _, day := range input.Availability {
		weekday, err := domain.ParseWeekday(day.Day)
		if err != nil {
			return nil, apperr.BadRequest("Invalid weekday: " + day.Day)
		}
		for _, slot := range day.Data {
			if _, _, err := timeslot.ParseClock(slot.StartTime); err != nil {
				return nil, apperr.BadRequest("Invalid start time: " + slot.StartTime)
			}
			if _, _, err := timeslot.ParseClock(slot.EndTime); err != nil {
				return nil, apperr.BadRequest("Invalid end time: " + slot.EndTime)
			}
			period.Demands = append(period.Demands, domain.SchedulePeriodDemand{
				WeekDay:        weekday,
				TimeFrame:      slot.Time,
				StartTime:      slot.StartTime,
				EndTime:        slot.EndTime,
				WorkerQuantity: slot.UserCount,
			})
		}
	}

	if err := s.periods.CreateSchedulePeriod(period); err != nil {
		return nil, err
	}

	view := scheduleView(period)
	return &view, nil
}

// GetAvailableSchedules lists the published periods an employee may book on.
func (s *ScheduleService) GetAvailableSchedules(userID int64, page, limit int) (*Paginated, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}
	return s.listSchedules(user.CompanyID, true, page, limit)
}

// GetAdminSchedules lists every live period of the company, published or not.
func (s *ScheduleService) GetAdminSchedules(companyID int64, page, limit int) (*Paginated, error) {
	return s.listSchedules(companyID, false, page, limit)
}

func (s *ScheduleService) listSchedules(companyID int64, publishedOnly bool, page, limit int) (*Paginated, error) {
	page, limit = normalizePage(page, limit)

	periods, total, err := s.periods.GetCompanySchedules(companyID, publishedOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	views := make([]ScheduleView, 0, len(periods))
	for _, period := range periods {
		views = append(views, scheduleView(period))
	}
	return paginate(views, page, limit, total), nil
}

// PublishSchedule flips the published flag. Publishing a period unpublishes
// the currently published one first, so at most one is live per company.
func (s *ScheduleService) PublishSchedule(companyID, scheduleID int64, publish bool) (*ScheduleView, error) {
	period, err := s.periods.GetSchedulePeriodByID(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Schedule not found")
		}
		return nil, err
	}
	if period.CompanyID != companyID {
		return nil, apperr.NotFound("Schedule not found")
	}
	if period.Published == publish {
		return nil, apperr.Conflict("Schedule is already in the requested state")
	}

	if publish {
		currentID, err := s.periods.GetPublishedScheduleID(companyID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if err == nil && currentID != scheduleID {
			if err := s.periods.SetSchedulePublished(currentID, false); err != nil {
				return nil, err
			}
		}
	}

	if err := s.periods.SetSchedulePublished(scheduleID, publish); err != nil {
		return nil, err
	}

	period.Published = publish
	view := scheduleView(period)
	return &view, nil
}

// DeleteSchedule soft-deletes the period. Bookings made against it remain for
// history but the period stops appearing in any listing.
func (s *ScheduleService) DeleteSchedule(companyID, scheduleID int64) error {
	period, err := s.periods.GetSchedulePeriodByID(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Schedule not found")
		}
		return err
	}
	if period.CompanyID != companyID {
		return apperr.NotFound("Schedule not found")
	}
	return s.periods.SoftDeleteSchedulePeriod(scheduleID)
}

// GetScheduleDetails renders the occupancy of every demand cell for one
// (week, year). Weeks before the period was created are clamped forward to
// its creation week.
func (s *ScheduleService) GetScheduleDetails(companyID, scheduleID int64, week, year int) (*ScheduleDetailsView, error) {
	period, err := s.periods.GetSchedulePeriodByID(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Schedule not found")
		}
		return nil, err
	}
	if period.CompanyID != companyID {
		return nil, apperr.NotFound("Schedule not found")
	}

	nowYear, nowWeek := s.clock.Now().ISOWeek()
	if week < 1 {
		week = nowWeek
	}
	if year < 1 {
		year = nowYear
	}
	createdYear, createdWeek := period.CreatedAt.ISOWeek()
	if year < createdYear || (year == createdYear && week < createdWeek) {
		week, year = createdWeek, createdYear
	}

	details := &ScheduleDetailsView{
		ID:          period.ID,
		Title:       period.PeriodName,
		IsPublished: period.Published,
		Repeat:      period.Repeat,
		Week:        week,
		Year:        year,
		Data:        make([]DemandWeekView, 0, len(period.Demands)),
	}

	for i := range period.Demands {
		demand := &period.Demands[i]
		workers, err := s.bookings.GetDemandWorkers(demand.ID, week, year)
		if err != nil {
			return nil, err
		}
		details.Data = append(details.Data, DemandWeekView{
			DemandView:       demandView(demand),
			AvailableWorkers: len(workers),
			Status:           demandStatus(len(workers), demand.WorkerQuantity),
			Workers:          workers,
		})
	}
	sortDemandWeekViews(details.Data)

	return details, nil
}

func scheduleView(period *domain.SchedulePeriod) ScheduleView {
	data := make([]DemandView, 0, len(period.Demands))
	for i := range period.Demands {
		data = append(data, demandView(&period.Demands[i]))
	}
	sortDemandViews(data)

	return ScheduleView{
		ID:             period.ID,
		Title:          period.PeriodName,
		IsPublished:    period.Published,
		Repeat:         period.Repeat,
		MaxHoursBefore: period.MaxHoursBefore,
		MaxHoursAfter:  period.MaxHoursAfter,
		CreatedAt:      period.CreatedAt,
		Data:           data,
	}
}

// Cells are presented SUNDAY..SATURDAY, earliest slot first within a day.
func sortDemandViews(views []DemandView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Day != views[j].Day {
			return views[i].Day.Index() < views[j].Day.Index()
		}
		return clockMinutes(views[i].StartTime) < clockMinutes(views[j].StartTime)
	})
}

func sortDemandWeekViews(views []DemandWeekView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Day != views[j].Day {
			return views[i].Day.Index() < views[j].Day.Index()
		}
		return clockMinutes(views[i].StartTime) < clockMinutes(views[j].StartTime)
	})
}

func clockMinutes(clock string) int {
	hour, minute, err := timeslot.ParseClock(clock)
	if err != nil {
		return 0
	}
	return hour*60 + minute
}
