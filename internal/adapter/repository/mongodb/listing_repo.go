package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

var _ domain.ListingRepository = (*ListingRepository)(nil)

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log.Named("MongoListingRepository"),
	}
}

// EnsureIndexes creates the indexes the listing queries sort on.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "created_ns", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "created_ns", Value: 1}}},
	})
	return err
}

func (r *ListingRepository) Create(ctx context.Context, userID string, l domain.NewListing) (string, error) {
	now := time.Now().UTC()
	doc := &listingDocument{
		ID:          uuid.NewString(),
		Name:        l.Name,
		Price:       l.Price,
		Quantity:    l.Quantity,
		Description: l.Description,
		Image:       l.Image,
		UserID:      userID,
		CreatedAt:   now,
		CreatedNs:   now.UnixNano(),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("Failed to insert listing", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("insert listing: %w", err)
	}
	id, ok := res.InsertedID.(string)
	if !ok || id == "" {
		return "", domain.ErrEmptyInsert
	}
	return id, nil
}

// DeleteOwned matches on both _id and user_id so the ownership check and the
// delete are a single operation.
func (r *ListingRepository) DeleteOwned(ctx context.Context, id, userID string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return 0, fmt.Errorf("delete listing: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{})
}

func (r *ListingRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "created_ns", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return toDomainListings(docs), nil
}
