package model

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "PENDING"
	SwapStatusAccepted  SwapStatus = "ACCEPTED"
	SwapStatusDeclined  SwapStatus = "DECLINED"
	SwapStatusCompleted SwapStatus = "COMPLETED"
	SwapStatusCancelled SwapStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed from s.
func (s SwapStatus) Terminal() bool {
	switch s {
	case SwapStatusDeclined, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

// Active reports whether s still blocks a new request for the same listing by the same requester.
func (s SwapStatus) Active() bool {
	return s == SwapStatusPending || s == SwapStatusAccepted
}

// Swap is a request by RequesterID to obtain the listing ListingID from its owner.
type Swap struct {
	ID          int64      `json:"id"`
	ListingID   int64      `json:"listingId"`
	RequesterID int64      `json:"requesterId"`
	Status      SwapStatus `json:"status"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (s Swap) EntityID() int64 { return s.ID }
