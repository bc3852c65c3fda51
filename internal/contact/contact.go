package contact

import "bookswap/internal/model"

// Visibility is the outcome of the contact policy for one user.
type Visibility string

const (
	Visible       Visibility = "VISIBLE"
	Hidden        Visibility = "HIDDEN"
	NotConfigured Visibility = "NOT_CONFIGURED"
)

// Contact is what a counterparty is allowed to see of a user's contact details.
// Method and Value are empty unless Visibility is Visible.
type Contact struct {
	Visibility Visibility          `json:"visibility"`
	Method     model.ContactMethod `json:"method,omitempty"`
	Value      string              `json:"value,omitempty"`
}

// Reveal applies the contact policy: details are shown when the user opted into public
// contact or when swapAccepted is true, and only for the user's preferred method.
func Reveal(user model.User, swapAccepted bool) Contact {
	if !user.PublicContact && !swapAccepted {
		return Contact{Visibility: Hidden}
	}
	switch {
	case user.PreferredMethod == model.ContactEmail && user.ContactEmail != "":
		return Contact{Visibility: Visible, Method: model.ContactEmail, Value: user.ContactEmail}
	case user.PreferredMethod == model.ContactPhone && user.ContactPhone != "":
		return Contact{Visibility: Visible, Method: model.ContactPhone, Value: user.ContactPhone}
	}
	return Contact{Visibility: NotConfigured}
}

// ForSwap evaluates the policy for one side of a swap. Contacts unlock only while the swap is ACCEPTED.
func ForSwap(user model.User, swap model.Swap) Contact {
	return Reveal(user, swap.Status == model.SwapStatusAccepted)
}
