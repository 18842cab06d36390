package domain

import "time"

type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "PENDING"
	TimeOffApproved TimeOffStatus = "APPROVED"
	TimeOffDenied   TimeOffStatus = "DENIED"
	TimeOffExpired  TimeOffStatus = "EXPIRED"
)

// Editable reports whether an employee may still change the request.
// APPROVED and EXPIRED are terminal for edits; DENIED requests may be
// amended and resubmitted.
func (s TimeOffStatus) Editable() bool {
	return s != TimeOffApproved && s != TimeOffExpired
}

type TimeOff struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userID"`
	CompanyID int64         `json:"companyID"`
	Type      string        `json:"type"`
	Reason    string        `json:"reason"`
	TimeFrame string        `json:"timeFrame"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Status    TimeOffStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *User         `json:"user,omitempty"`
}
