package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/apperr"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/notify"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
)

// TimeOffService handles employee time-off requests and their admin review.
type TimeOffService struct {
	users      UserStore
	timeOff    TimeOffStore
	clock      timeslot.Clock
	dispatcher notify.Dispatcher
}

func NewTimeOffService(users UserStore, timeOff TimeOffStore, clock timeslot.Clock, dispatcher notify.Dispatcher) *TimeOffService {
	return &TimeOffService{
		users:      users,
		timeOff:    timeOff,
		clock:      clock,
		dispatcher: dispatcher,
	}
}

type TimeOffInput struct {
	Type      string    `json:"type" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// EditTimeOffInput carries a partial update; nil fields keep their value.
type EditTimeOffInput struct {
	Type      *string    `json:"type"`
	Reason    *string    `json:"reason"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// RequestTimeOff files a PENDING request for a future interval.
func (s *TimeOffService) RequestTimeOff(userID, companyID int64, input *TimeOffInput) (*Paginated, error) {
	if _, err := s.getCompanyUser(userID, companyID); err != nil {
		return nil, err
	}

	if err := s.assertValidInterval(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	request := &domain.TimeOff{
		UserID:    userID,
		CompanyID: companyID,
		Type:      input.Type,
		Reason:    input.Reason,
		TimeFrame: timeslot.TimeFrame(input.StartDate, input.EndDate),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.timeOff.CreateTimeOff(request); err != nil {
		return nil, err
	}

	return s.GetUserRequests(userID, companyID, 1, 10)
}

// GetUserRequests lists the caller's own requests, newest first.
func (s *TimeOffService) GetUserRequests(userID, companyID int64, page, limit int) (*Paginated, error) {
	if _, err := s.getCompanyUser(userID, companyID); err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	requests, total, err := s.timeOff.GetUserTimeOff(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	views := make([]TimeOffView, 0, len(requests))
	for _, request := range requests {
		views = append(views, timeOffView(request))
	}
	return paginate(views, page, limit, total), nil
}

// UpdateUserRequest edits an unresolved request. APPROVED and EXPIRED
// requests can no longer be edited; DENIED ones may be amended and go back
// through review.
func (s *TimeOffService) UpdateUserRequest(userID, companyID, requestID int64, input *EditTimeOffInput) (*Paginated, error) {
	if _, err := s.getCompanyUser(userID, companyID); err != nil {
		return nil, err
	}

	request, err := s.timeOff.GetTimeOffByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Request not found")
		}
		return nil, err
	}
	if request.UserID != userID {
		return nil, apperr.NotFound("Request not found")
	}
	if !request.Status.Editable() {
		return nil, apperr.BadRequest("Resolved requests can no longer be updated")
	}

	if input.Type != nil {
		request.Type = *input.Type
	}
	if input.Reason != nil {
		request.Reason = *input.Reason
	}
	if input.StartDate != nil {
		request.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		request.EndDate = *input.EndDate
	}
	if err := s.assertValidInterval(request.StartDate, request.EndDate); err != nil {
		return nil, err
	}
	request.TimeFrame = timeslot.TimeFrame(request.StartDate, request.EndDate)

	if err := s.timeOff.UpdateTimeOff(request); err != nil {
		return nil, err
	}

	return s.GetUserRequests(userID, companyID, 1, 10)
}

// ViewCompanyRequests is the admin review queue, filtered by status
// (PENDING when unset).
func (s *TimeOffService) ViewCompanyRequests(adminID, companyID int64, status string, page, limit int) (*Paginated, error) {
	if _, err := s.getCompanyUser(adminID, companyID); err != nil {
		return nil, err
	}

	filter, err := parseTimeOffStatus(status)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	requests, total, err := s.timeOff.GetCompanyTimeOffByStatus(companyID, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	views := make([]TimeOffView, 0, len(requests))
	for _, request := range requests {
		views = append(views, timeOffView(request))
	}
	return paginate(views, page, limit, total), nil
}

// AcceptOrRejectRequest resolves a request and notifies its owner. EXPIRED
// requests are terminal and cannot be resolved.
func (s *TimeOffService) AcceptOrRejectRequest(adminID, companyID, requestID int64, approve bool) (*Paginated, error) {
	admin, err := s.getCompanyUser(adminID, companyID)
	if err != nil {
		return nil, err
	}

	request, err := s.timeOff.GetTimeOffByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Request not found")
		}
		return nil, err
	}
	if request.CompanyID != companyID {
		return nil, apperr.NotFound("Request not found")
	}
	if request.Status == domain.TimeOffExpired {
		return nil, apperr.BadRequest("Expired requests cannot be updated")
	}

	status := domain.TimeOffDenied
	activity := admin.ShortName() + " denied your time off request"
	if approve {
		status = domain.TimeOffApproved
		activity = admin.ShortName() + " approved your time off request"
	}
	if err := s.timeOff.SetTimeOffStatus(requestID, status); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(domain.Notification{
		UserID:        request.UserID,
		TriggerUserID: adminID,
		TagID:         request.ID,
		Type:          domain.NotificationTimeOff,
		Activity:      activity,
	})

	// The review queue refreshes on the tab the request came from.
	return s.ViewCompanyRequests(adminID, companyID, string(request.Status), 1, 10)
}

func (s *TimeOffService) getCompanyUser(userID, companyID int64) (*domain.User, error) {
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

func (s *TimeOffService) assertValidInterval(start, end time.Time) error {
	now := s.clock.Now()
	if start.Before(now) {
		return apperr.BadRequest("Cannot select a past start date")
	}
	if end.Before(now) {
		return apperr.BadRequest("Cannot select a past end date")
	}
	if !end.After(start) {
		return apperr.BadRequest("End date must be after the start date")
	}
	return nil
}

func parseTimeOffStatus(status string) (domain.TimeOffStatus, error) {
	if status == "" {
		return domain.TimeOffPending, nil
	}
	switch s := domain.TimeOffStatus(status); s {
	case domain.TimeOffPending, domain.TimeOffApproved, domain.TimeOffDenied, domain.TimeOffExpired:
		return s, nil
	}
	return "", apperr.BadRequest("Invalid time off status")
}
