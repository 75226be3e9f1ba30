package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmate/backend/internal/model"
)

func TestMemoryBookCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.InsertBookRecord(ctx, &model.BookRecord{
		UserID: "u1", Title: "Hyperion", Authors: "Dan Simmons",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, err := m.QueryBooksByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.RecordTypeBook, records[0].RecordType)
	assert.False(t, records[0].CreatedAt.IsZero())

	updated := records[0]
	updated.Title = "Hyperion (1st ed.)"
	require.NoError(t, m.UpdateBookRecord(ctx, &updated))

	records, err = m.QueryBooksByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Hyperion (1st ed.)", records[0].Title)

	require.NoError(t, m.DeleteBookRecord(ctx, "u1", id))
	records, err = m.QueryBooksByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryRecordsAreScopedByUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed(
		model.BookRecord{UserID: "u1", Title: "Mine"},
		model.BookRecord{UserID: "u2", Title: "Theirs"},
	)

	records, err := m.QueryBooksByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mine", records[0].Title)

	err = m.UpdateBookRecord(ctx, &model.BookRecord{ID: records[0].ID, UserID: "u2"})
	assert.ErrorIs(t, err, ErrNotFound)
	err = m.DeleteBookRecord(ctx, "u2", records[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryWishlistDuplicateGuard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	item := model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13: "9780441569595", Title: "Neuromancer", Author: "William Gibson",
		},
	}
	_, err := m.InsertWishlistItem(ctx, &item)
	require.NoError(t, err)

	dup := item
	dup.ID = ""
	_, err = m.InsertWishlistItem(ctx, &dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same ISBN for a different user is not a duplicate.
	other := item
	other.ID = ""
	other.UserID = "u2"
	_, err = m.InsertWishlistItem(ctx, &other)
	assert.NoError(t, err)
}

func TestMemoryWishlistSurfacesInBookQuery(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed(model.BookRecord{UserID: "u1", Title: "Owned"})
	_, err := m.InsertWishlistItem(ctx, &model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13: "9780000000001", Title: "Wanted", Author: "Someone",
		},
	})
	require.NoError(t, err)

	records, err := m.QueryBooksByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byTitle := map[string]model.BookRecord{}
	for _, rec := range records {
		byTitle[rec.Title] = rec
	}
	assert.Equal(t, model.RecordTypeBook, byTitle["Owned"].RecordType)
	assert.Equal(t, model.RecordTypeWishlist, byTitle["Wanted"].RecordType)
	wanted := byTitle["Wanted"]
	assert.True(t, wanted.IsWishlist())
}

func TestMemoryWishlistGetAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	item := model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13: "9780000000002", Title: "Wanted", Author: "Someone",
		},
	}
	id, err := m.InsertWishlistItem(ctx, &item)
	require.NoError(t, err)

	got, err := m.GetWishlistItem(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "Wanted", got.Title)
	assert.False(t, got.AddedAt.IsZero())

	_, err = m.GetWishlistItem(ctx, "u2", id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.DeleteWishlistItem(ctx, "u1", id))
	items, err := m.QueryWishlist(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
