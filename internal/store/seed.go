package store

import (
	"encoding/base64"
	"fmt"
	"time"

	"bookswap/internal/model"
)

// Seed returns the default dataset used when nothing valid is stored yet.
func Seed(now time.Time) *model.Snapshot {
	return &model.Snapshot{
		Users: []model.User{
			{
				ID: 1, Email: "alice@example.com", DisplayName: "Alice", Role: model.RoleUser,
				PublicContact: true, PreferredMethod: model.ContactEmail,
				ContactEmail: "alice@example.com", CreatedAt: now,
			},
			{
				ID: 2, Email: "bob@example.com", DisplayName: "Bob", Role: model.RoleUser,
				PublicContact: false, PreferredMethod: model.ContactPhone,
				ContactPhone: "+15551234567", CreatedAt: now,
			},
		},
		Books: []model.Book{
			{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780261103344", CreatedAt: now},
			{ID: 2, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", CreatedAt: now},
			{ID: 3, Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "9780441478125", CreatedAt: now},
		},
		Listings: []model.Listing{
			{
				ID: 1, BookID: 1, OwnerID: 1, Condition: model.ConditionGood,
				Notes: "Slightly worn dust jacket", Available: true, CreatedAt: now,
				Images: []string{placeholderImage("Hobbit")},
			},
			{
				ID: 2, BookID: 2, OwnerID: 2, Condition: model.ConditionUsed,
				Notes: "Some notes in margins", Available: true, CreatedAt: now,
				Images: []string{placeholderImage("Dune"), placeholderImage("Dune 2")},
			},
		},
		Swaps:   []model.Swap{},
		Ratings: []model.Rating{},
		NextID:  model.NextID{Listing: 3, Swap: 1, Book: 4},
	}
}

func placeholderImage(text string) string {
	svg := fmt.Sprintf(`<svg xmlns='http://www.w3.org/2000/svg' width='640' height='360'>`+
		`<rect width='100%%' height='100%%' fill='#e2e8f0'/>`+
		`<text x='50%%' y='50%%' dominant-baseline='middle' text-anchor='middle' fill='#111' font-family='sans-serif' font-size='28'>%s</text></svg>`, text)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
