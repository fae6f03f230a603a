package book

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/apperr"
)

// memoryRepo is an in-memory Repository double. It preserves insertion
// order so List can return most-recent-first like the real adapter.
type memoryRepo struct {
	mu    sync.Mutex
	books map[uuid.UUID]Book
	order []uuid.UUID

	createCalls int
	lastOffset  int
	lastLimit   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{books: make(map[uuid.UUID]Book)}
}

func (m *memoryRepo) Create(ctx context.Context, data CreateBook) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	now := time.Now().UTC()
	b := Book{
		ID:        uuid.New(),
		Title:     data.Title,
		Author:    data.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.books[b.ID] = b
	m.order = append(m.order, b.ID)
	return b, nil
}

func (m *memoryRepo) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return Book{}, apperr.ErrNotFound
	}
	return b, nil
}

func (m *memoryRepo) List(ctx context.Context, offset, limit int) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOffset = offset
	m.lastLimit = limit

	out := []Book{}
	for i := len(m.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.books[m.order[i]])
	}
	return out, nil
}

func (m *memoryRepo) Update(ctx context.Context, id uuid.UUID, data UpdateBook) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return Book{}, apperr.ErrNotFound
	}
	if data.Title != nil {
		b.Title = *data.Title
	}
	if data.Author != nil {
		b.Author = *data.Author
	}
	b.UpdatedAt = time.Now().UTC()
	m.books[id] = b
	return b, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func strptr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "Dune", created.Title)
		assert.Equal(t, "Herbert", created.Author)
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt), "timestamps must be equal on create")
	})

	t.Run("boundary lengths accepted", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateBook{
			Title:  strings.Repeat("t", 200),
			Author: strings.Repeat("a", 100),
		})
		require.NoError(t, err)
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			data CreateBook
			want string
		}{
			{"empty title", CreateBook{Title: "", Author: "Herbert"}, "title cannot be empty"},
			{"whitespace title", CreateBook{Title: "   \t", Author: "Herbert"}, "title cannot be empty"},
			{"title too long", CreateBook{Title: strings.Repeat("t", 201), Author: "Herbert"}, "title too long"},
			{"empty author", CreateBook{Title: "Dune", Author: ""}, "author cannot be empty"},
			{"whitespace author", CreateBook{Title: "Dune", Author: " "}, "author cannot be empty"},
			{"author too long", CreateBook{Title: "Dune", Author: strings.Repeat("a", 101)}, "author too long"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newMemoryRepo()
				svc := NewService(repo)

				_, err := svc.Create(ctx, tt.data)
				require.Error(t, err)

				var appErr *apperr.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apperr.KindValidation, appErr.Kind())
				assert.Contains(t, err.Error(), tt.want)
				assert.Zero(t, repo.createCalls, "no storage call on validation failure")
			})
		}
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("most recent first", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		for _, title := range []string{"first", "second", "third"} {
			_, err := svc.Create(ctx, CreateBook{Title: title, Author: "A"})
			require.NoError(t, err)
		}

		books, err := svc.List(ctx, 0, 20)
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "third", books[0].Title)
		assert.Equal(t, "second", books[1].Title)
		assert.Equal(t, "first", books[2].Title)
	})

	t.Run("offset past the end", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateBook{Title: "only", Author: "A"})
		require.NoError(t, err)

		books, err := svc.List(ctx, 100, 20)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("clamping", func(t *testing.T) {
		tests := []struct {
			name                  string
			offset, limit         int
			wantOffset, wantLimit int
		}{
			{"defaults pass through", 0, 20, 0, 20},
			{"zero limit", 0, 0, 0, 1},
			{"negative limit", 0, -7, 0, 1},
			{"oversized limit", 0, 500, 0, 100},
			{"negative offset", -3, 20, 0, 20},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newMemoryRepo()
				svc := NewService(repo)

				_, err := svc.List(ctx, tt.offset, tt.limit)
				require.NoError(t, err)
				assert.Equal(t, tt.wantOffset, repo.lastOffset)
				assert.Equal(t, tt.wantLimit, repo.lastLimit)
			})
		}
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update changes only the given field", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, UpdateBook{Title: strptr("Dune Messiah")})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, "Herbert", updated.Author)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("validates only present fields", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateBook{Author: strptr("")})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindValidation, appErr.Kind())

		// unchanged on validation failure
		fetched, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Herbert", fetched.Author)
	})

	t.Run("no-op update refreshes the timestamp", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, UpdateBook{})
		require.NoError(t, err)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Author, updated.Author)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)

		_, err := svc.Update(ctx, uuid.New(), UpdateBook{Title: strptr("x")})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, CreateBook{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), apperr.ErrNotFound)
}
