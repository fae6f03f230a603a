package book

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book record.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBook is the input for creating a book.
type CreateBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// UpdateBook is the input for a partial update.
// A nil field means "leave unchanged".
type UpdateBook struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
}
