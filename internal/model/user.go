package model

import "time"

// RoleUser is the only role a marketplace user can hold.
const RoleUser = "USER"

// ContactMethod is the channel a user prefers to be reached on.
type ContactMethod string

const (
	ContactNone  ContactMethod = ""
	ContactEmail ContactMethod = "EMAIL"
	ContactPhone ContactMethod = "PHONE"
)

// Valid reports whether m is one of the known methods (including none).
func (m ContactMethod) Valid() bool {
	switch m {
	case ContactNone, ContactEmail, ContactPhone:
		return true
	}
	return false
}

// User represents a marketplace member. Email is the login key.
type User struct {
	ID              int64         `json:"id"`
	Email           string        `json:"email"`
	DisplayName     string        `json:"displayName"`
	Role            string        `json:"role"`
	PublicContact   bool          `json:"publicContact"`
	PreferredMethod ContactMethod `json:"preferredMethod"`
	ContactEmail    string        `json:"contactEmail"`
	ContactPhone    string        `json:"contactPhone"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func (u User) EntityID() int64 { return u.ID }
