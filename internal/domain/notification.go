package domain

import "time"

type NotificationType string

const (
	NotificationShiftSwap NotificationType = "SHIFT_SWAP"
	NotificationTimeOff   NotificationType = "TIME_OFF"
	NotificationSchedule  NotificationType = "SCHEDULE"
)

// Notification is the record created for every committed state transition in
// the booking, swap and time-off engines. Delivery is best-effort: a failed
// dispatch never rolls back the transition it reports.
type Notification struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userID"`
	TriggerUserID int64            `json:"triggerUserID"`
	TagID         int64            `json:"tagID"`
	Type          NotificationType `json:"type"`
	Activity      string           `json:"activity"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}
