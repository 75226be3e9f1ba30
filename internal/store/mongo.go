package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shelfmate/backend/internal/model"
)

const recordsCollection = "records"

// Mongo is the document-database Store. Books and wishlist entries share one
// collection, discriminated by record_type.
type Mongo struct {
	client  *mongo.Client
	records *mongo.Collection
}

// wishlistDoc is the stored shape of a wishlist entry: the item itself plus
// the record-type discriminator.
type wishlistDoc struct {
	model.WishlistItem `bson:",inline"`
	RecordType         string `bson:"record_type"`
}

// NewMongo connects to the document database and ensures the index backing
// the duplicate-wishlist guard.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	records := client.Database(dbName).Collection(recordsCollection)

	// Unique (user_id, isbn13) over wishlist entries backstops the
	// check-before-insert in InsertWishlistItem.
	_, err = records.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "isbn13", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"record_type": model.RecordTypeWishlist}),
	})
	if err != nil {
		return nil, fmt.Errorf("mongo ensure index: %w", err)
	}

	return &Mongo{client: client, records: records}, nil
}

// Close disconnects from the database.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Mongo) QueryBooksByUser(ctx context.Context, userID string) ([]model.BookRecord, error) {
	cur, err := s.records.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.BookRecord
	for cur.Next(ctx) {
		recordType, _ := cur.Current.Lookup("record_type").StringValueOK()
		if recordType == model.RecordTypeWishlist {
			var doc wishlistDoc
			if err := bson.Unmarshal(cur.Current, &doc); err != nil {
				return nil, fmt.Errorf("decode wishlist record: %w", err)
			}
			out = append(out, model.BookRecord{
				ID:         doc.ID,
				UserID:     doc.UserID,
				Title:      doc.Title,
				Authors:    doc.Author,
				Publisher:  doc.Publisher,
				Year:       doc.Year,
				RecordType: model.RecordTypeWishlist,
				CreatedAt:  doc.AddedAt,
			})
			continue
		}
		var rec model.BookRecord
		if err := bson.Unmarshal(cur.Current, &rec); err != nil {
			return nil, fmt.Errorf("decode book record: %w", err)
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	return out, nil
}

func (s *Mongo) InsertBookRecord(ctx context.Context, rec *model.BookRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RecordType == "" {
		rec.RecordType = model.RecordTypeBook
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if _, err := s.records.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert book record: %w", err)
	}
	return rec.ID, nil
}

func (s *Mongo) UpdateBookRecord(ctx context.Context, rec *model.BookRecord) error {
	res, err := s.records.ReplaceOne(ctx, bson.M{
		"_id":         rec.ID,
		"user_id":     rec.UserID,
		"record_type": model.RecordTypeBook,
	}, rec)
	if err != nil {
		return fmt.Errorf("update book record: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteBookRecord(ctx context.Context, userID, id string) error {
	res, err := s.records.DeleteOne(ctx, bson.M{
		"_id":         id,
		"user_id":     userID,
		"record_type": model.RecordTypeBook,
	})
	if err != nil {
		return fmt.Errorf("delete book record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) QueryWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	cur, err := s.records.Find(ctx, bson.M{
		"user_id":     userID,
		"record_type": model.RecordTypeWishlist,
	}, options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer cur.Close(ctx)

	var docs []wishlistDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	out := make([]model.WishlistItem, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.WishlistItem)
	}
	return out, nil
}

func (s *Mongo) GetWishlistItem(ctx context.Context, userID, id string) (*model.WishlistItem, error) {
	var doc wishlistDoc
	err := s.records.FindOne(ctx, bson.M{
		"_id":         id,
		"user_id":     userID,
		"record_type": model.RecordTypeWishlist,
	}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wishlist item: %w", err)
	}
	return &doc.WishlistItem, nil
}

// InsertWishlistItem checks for an existing entry with the same ISBN-13
// before inserting. The unique partial index turns the remaining race into a
// duplicate-key error, reported the same way.
func (s *Mongo) InsertWishlistItem(ctx context.Context, item *model.WishlistItem) (string, error) {
	count, err := s.records.CountDocuments(ctx, bson.M{
		"user_id":     item.UserID,
		"isbn13":      item.ISBN13,
		"record_type": model.RecordTypeWishlist,
	})
	if err != nil {
		return "", fmt.Errorf("wishlist duplicate check: %w", err)
	}
	if count > 0 {
		return "", ErrDuplicate
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	_, err = s.records.InsertOne(ctx, wishlistDoc{
		WishlistItem: *item,
		RecordType:   model.RecordTypeWishlist,
	})
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("insert wishlist item: %w", err)
	}
	return item.ID, nil
}

func (s *Mongo) DeleteWishlistItem(ctx context.Context, userID, id string) error {
	res, err := s.records.DeleteOne(ctx, bson.M{
		"_id":         id,
		"user_id":     userID,
		"record_type": model.RecordTypeWishlist,
	})
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
