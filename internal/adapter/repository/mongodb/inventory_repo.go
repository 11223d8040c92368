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

type InventoryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

var _ domain.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository(db *mongo.Database, log *logger.Logger) *InventoryRepository {
	return &InventoryRepository{
		collection: db.Collection("inventory"),
		logger:     log.Named("MongoInventoryRepository"),
	}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (string, error) {
	now := time.Now().UTC()
	doc := &inventoryDocument{
		ID:           uuid.NewString(),
		UserID:       item.UserID,
		CropName:     item.CropName,
		Quantity:     item.Quantity,
		Unit:         string(item.Unit),
		MarketPrice:  item.MarketPrice,
		IsProfitable: item.IsProfitable,
		AddedAt:      now,
		AddedNs:      now.UnixNano(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert inventory item", zap.String("user_id", item.UserID), zap.Error(err))
		return "", fmt.Errorf("insert inventory item: %w", err)
	}
	item.ID = doc.ID
	item.AddedAt = now
	return doc.ID, nil
}

func (r *InventoryRepository) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]*domain.InventoryItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "added_at", Value: -1}, {Key: "added_ns", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*inventoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	items := make([]*domain.InventoryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, toDomainInventory(d))
	}
	return items, nil
}
