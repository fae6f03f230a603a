package book

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, data CreateBook) (Book, error)
	Get(ctx context.Context, id uuid.UUID) (Book, error)
	List(ctx context.Context, offset, limit int) ([]Book, error)
	Update(ctx context.Context, id uuid.UUID, data UpdateBook) (Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
