// Package store is the document-store boundary for book records and wishlist
// items. Wishlist entries live in the same record space as ordinary books,
// discriminated by record type; queries over a user's records return both and
// leave tag filtering to the caller.
package store

import (
	"context"
	"errors"

	"shelfmate/backend/internal/model"
)

var (
	// ErrNotFound is returned when a record or wishlist item does not exist
	// for the given user.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned by InsertWishlistItem when the user already
	// has a wishlist entry with the same ISBN-13. The existence check and
	// the insert are serialized per call, so concurrent saves of the same
	// item cannot both land.
	ErrDuplicate = errors.New("store: duplicate wishlist item")
)

// Store abstracts the document database.
type Store interface {
	// QueryBooksByUser returns every record the user owns, wishlist-tagged
	// entries included.
	QueryBooksByUser(ctx context.Context, userID string) ([]model.BookRecord, error)
	InsertBookRecord(ctx context.Context, rec *model.BookRecord) (string, error)
	UpdateBookRecord(ctx context.Context, rec *model.BookRecord) error
	DeleteBookRecord(ctx context.Context, userID, id string) error

	QueryWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error)
	GetWishlistItem(ctx context.Context, userID, id string) (*model.WishlistItem, error)
	InsertWishlistItem(ctx context.Context, item *model.WishlistItem) (string, error)
	DeleteWishlistItem(ctx context.Context, userID, id string) error

	Ping(ctx context.Context) error
}
