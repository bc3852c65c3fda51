package model

import "time"

// Book is the bibliographic record shared by every listing of the same title and author.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b Book) EntityID() int64 { return b.ID }

// Rating is one user's scores for one book. (UserID, BookID) is the key.
type Rating struct {
	UserID     int64     `json:"userId"`
	BookID     int64     `json:"bookId"`
	Difficulty int       `json:"difficulty"`
	Emotion    int       `json:"emotion"`
	Enjoyment  int       `json:"enjoyment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

const (
	MinScore = 1
	MaxScore = 5
)
