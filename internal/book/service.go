package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	"bookshelf/internal/apperr"
)

const (
	maxTitleLen  = 200
	maxAuthorLen = 100
	maxListLimit = 100
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// Service validates inputs and enforces business rules before
// delegating to a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input and persists a new book.
// No storage call is made when validation fails.
func (s *Service) Create(ctx context.Context, data CreateBook) (Book, error) {
	if err := validateField("title", data.Title, maxTitleLen); err != nil {
		return Book{}, err
	}
	if err := validateField("author", data.Author, maxAuthorLen); err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, data)
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	return s.repo.Get(ctx, id)
}

// List returns books ordered by creation time, most recent first.
// The limit is clamped into [1, 100] and the offset into [0, +inf).
func (s *Service) List(ctx context.Context, offset, limit int) ([]Book, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

// Update validates only the fields present in data, then delegates.
// An update with no fields set is accepted and refreshes the
// updated timestamp.
func (s *Service) Update(ctx context.Context, id uuid.UUID, data UpdateBook) (Book, error) {
	if data.Title != nil {
		if err := validateField("title", *data.Title, maxTitleLen); err != nil {
			return Book{}, err
		}
	}
	if data.Author != nil {
		if err := validateField("author", *data.Author, maxAuthorLen); err != nil {
			return Book{}, err
		}
	}
	return s.repo.Update(ctx, id, data)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// validateField rejects values that are blank after trimming or longer
// than max. Length is measured on the raw value, before trimming.
func validateField(field, value string, max int) error {
	err := validate.Var(value, fmt.Sprintf("notblank,max=%d", max))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "notblank":
			return apperr.Validation(field + " cannot be empty")
		case "max":
			return apperr.Validation(field + " too long")
		}
	}
	return apperr.Validation(field + " is invalid")
}
