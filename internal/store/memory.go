package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shelfmate/backend/internal/model"
)

// Memory is an in-memory Store used in tests and when no document database
// is configured.
type Memory struct {
	mu       sync.Mutex
	records  []model.BookRecord
	wishlist []model.WishlistItem
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Seed inserts records directly, for tests.
func (m *Memory) Seed(records ...model.BookRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.RecordType == "" {
			rec.RecordType = model.RecordTypeBook
		}
		m.records = append(m.records, rec)
	}
}

func (m *Memory) QueryBooksByUser(ctx context.Context, userID string) ([]model.BookRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.BookRecord
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	// Wishlist entries share the record space; surface them tagged so the
	// caller can filter.
	for _, item := range m.wishlist {
		if item.UserID == userID {
			out = append(out, model.BookRecord{
				ID:         item.ID,
				UserID:     item.UserID,
				Title:      item.Title,
				Authors:    item.Author,
				Publisher:  item.Publisher,
				Year:       item.Year,
				RecordType: model.RecordTypeWishlist,
				CreatedAt:  item.AddedAt,
			})
		}
	}
	return out, nil
}

func (m *Memory) InsertBookRecord(ctx context.Context, rec *model.BookRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RecordType == "" {
		rec.RecordType = model.RecordTypeBook
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.records = append(m.records, *rec)
	return rec.ID, nil
}

func (m *Memory) UpdateBookRecord(ctx context.Context, rec *model.BookRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == rec.ID && m.records[i].UserID == rec.UserID {
			m.records[i] = *rec
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteBookRecord(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id && m.records[i].UserID == userID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) QueryWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.WishlistItem
	for _, item := range m.wishlist {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *Memory) GetWishlistItem(ctx context.Context, userID, id string) (*model.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.wishlist {
		if item.ID == id && item.UserID == userID {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// InsertWishlistItem checks for an existing entry with the same ISBN-13 and
// inserts under a single lock, so the duplicate guard cannot race.
func (m *Memory) InsertWishlistItem(ctx context.Context, item *model.WishlistItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.wishlist {
		if existing.UserID == item.UserID &&
			strings.EqualFold(existing.ISBN13, item.ISBN13) {
			return "", ErrDuplicate
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	m.wishlist = append(m.wishlist, *item)
	return item.ID, nil
}

func (m *Memory) DeleteWishlistItem(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.wishlist {
		if m.wishlist[i].ID == id && m.wishlist[i].UserID == userID {
			m.wishlist = append(m.wishlist[:i], m.wishlist[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
