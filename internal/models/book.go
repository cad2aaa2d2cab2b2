package models

import "time"

// Reading statuses a Book may carry.
const (
	StatusWantToRead = "Want to Read"
	StatusReading    = "Reading"
	StatusCompleted  = "Completed"
)

// IsValidStatus reports whether s is one of the allowed reading statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// Book is a single tracked book. Every book has exactly one owner, assigned
// at creation and never reassigned.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`   // ordered, duplicates allowed
	Status    string    `json:"status"` // Want to Read | Reading | Completed
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
