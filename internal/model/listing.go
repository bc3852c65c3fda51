package model

import "time"

// Condition describes the physical state of a listed copy.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionGood Condition = "GOOD"
	ConditionUsed Condition = "USED"
	ConditionWorn Condition = "WORN"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionUsed, ConditionWorn:
		return true
	}
	return false
}

// MaxImages is the number of images a listing can carry.
const MaxImages = 3

// Listing is an offer of one copy of a book by its owner.
// Images are opaque references (data URIs in practice), kept in upload order.
type Listing struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	OwnerID   int64     `json:"ownerId"`
	Condition Condition `json:"condition"`
	Notes     string    `json:"notes"`
	Available bool      `json:"available"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l Listing) EntityID() int64 { return l.ID }
