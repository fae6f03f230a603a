package book

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/apperr"
)

const bookColumns = "id, title, author, created_at, updated_at"

// PostgresRepo is the Repository implementation backed by Postgres.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, data CreateBook) (Book, error) {
	// Both timestamps come from the same now() so they are equal on insert.
	const query = `
		INSERT INTO books (id, title, author, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, uuid.New(), data.Title, data.Author))
}

func (r *PostgresRepo) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Book, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, limit, offset)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, apperr.Storage(err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return books, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id uuid.UUID, data UpdateBook) (Book, error) {
	// Single conditional write: absent fields bind NULL and fall back to
	// the current column value, so two concurrent partial updates cannot
	// overwrite each other's fields.
	const query = `
		UPDATE books
		SET title      = COALESCE($2, title),
		    author     = COALESCE($3, author),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, id, data.Title, data.Author))
}

func (r *PostgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, apperr.ErrNotFound
		}
		return Book{}, apperr.Storage(err)
	}
	return b, nil
}
