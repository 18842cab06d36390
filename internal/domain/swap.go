package domain

import "time"

type SwapStatus string

const (
	SwapPending  SwapStatus = "PENDING"
	SwapApproved SwapStatus = "APPROVED"
	SwapDenied   SwapStatus = "DENIED"
)

// ShiftSwap is a two-party exchange proposal. The requester offers their own
// booking (RequesterShift) for the receiver's (ReceiverShift). Only the
// receiver resolves it, exactly once. At most one swap exists per unordered
// pair of bookings.
type ShiftSwap struct {
	ID               int64      `json:"id"`
	CompanyID        int64      `json:"companyID"`
	RequesterID      int64      `json:"requesterID"`
	ReceiverID       int64      `json:"receiverID"`
	RequesterShiftID int64      `json:"requesterShiftID"`
	ReceiverShiftID  int64      `json:"receiverShiftID"`
	Status           SwapStatus `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`

	// Loaded relations, populated by GetSwapByID.
	Requester      *User         `json:"-"`
	Receiver       *User         `json:"-"`
	RequesterShift *ShiftBooking `json:"-"`
	ReceiverShift  *ShiftBooking `json:"-"`
}
