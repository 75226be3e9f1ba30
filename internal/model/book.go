package model

import "time"

// Record types stored in the books collection. Wishlist entries live in the
// same collection as ordinary records, discriminated by RecordType.
const (
	RecordTypeBook     = "book"
	RecordTypeWishlist = "wishlist"
)

// BookRecord is a cataloged physical book owned by a user.
type BookRecord struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"user_id" bson:"user_id"`
	Title         string    `json:"title" bson:"title"`
	Authors       string    `json:"authors" bson:"authors"` // comma-joined
	Publisher     string    `json:"publisher" bson:"publisher"`
	Year          string    `json:"year" bson:"year"`
	Binding       string    `json:"binding" bson:"binding"`
	Language      string    `json:"language" bson:"language"`
	Edition       string    `json:"edition" bson:"edition"`
	PurchasePrice float64   `json:"purchase_price" bson:"purchase_price"`
	CollectionID  string    `json:"collection_id,omitempty" bson:"collection_id,omitempty"`
	RecordType    string    `json:"record_type" bson:"record_type"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// IsWishlist reports whether the record is a wishlist entry rather than an
// owned book.
func (r *BookRecord) IsWishlist() bool {
	return r.RecordType == RecordTypeWishlist
}

// WishlistItem is a recommendation the user accepted, persisted until it is
// removed or promoted to a full BookRecord.
type WishlistItem struct {
	ID             string    `json:"id" bson:"_id"`
	UserID         string    `json:"user_id" bson:"user_id"`
	Recommendation `bson:",inline"`
	Source         string    `json:"source" bson:"source"`
	AddedAt        time.Time `json:"added_at" bson:"added_at"`
}

// ToBookRecord converts a wishlist item into an ordinary book record for
// promotion into the user's collection.
func (w *WishlistItem) ToBookRecord() BookRecord {
	return BookRecord{
		UserID:     w.UserID,
		Title:      w.Title,
		Authors:    w.Author,
		Publisher:  w.Publisher,
		Year:       w.Year,
		RecordType: RecordTypeBook,
	}
}
