package mongodb

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
)

// listingDocument is a listing as stored in MongoDB. _id is a UUID string so
// ids look the same as with the relational backend.
type listingDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Price       string    `bson:"price"`
	Quantity    string    `bson:"quantity"`
	Description *string   `bson:"description"`
	Image       string    `bson:"image"`
	UserID      string    `bson:"user_id"`
	CreatedAt   time.Time `bson:"created_at"`
	// CreatedNs breaks created_at ties, BSON dates only keep milliseconds.
	CreatedNs int64 `bson:"created_ns"`
}

type inventoryDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"user_id"`
	CropName     string    `bson:"crop_name"`
	Quantity     float64   `bson:"quantity"`
	Unit         string    `bson:"unit"`
	MarketPrice  float64   `bson:"market_price"`
	IsProfitable bool      `bson:"is_profitable"`
	AddedAt      time.Time `bson:"added_at"`
	AddedNs      int64     `bson:"added_ns"`
}

func toDomainListing(d *listingDocument) *domain.Listing {
	return &domain.Listing{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
		Image:       d.Image,
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomainListing(doc))
	}
	return out
}

func toDomainInventory(d *inventoryDocument) *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:           d.ID,
		UserID:       d.UserID,
		CropName:     d.CropName,
		Quantity:     d.Quantity,
		Unit:         domain.Unit(d.Unit),
		MarketPrice:  d.MarketPrice,
		IsProfitable: d.IsProfitable,
		AddedAt:      d.AddedAt,
	}
}
