package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/jmoiron/sqlx"
)

type inventoryRow struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	CropName     string    `db:"crop_name"`
	Quantity     float64   `db:"quantity"`
	Unit         string    `db:"unit"`
	MarketPrice  float64   `db:"market_price"`
	IsProfitable bool      `db:"is_profitable"`
	AddedAt      time.Time `db:"added_at"`
}

type InventoryRepository struct {
	db *sqlx.DB
}

var _ domain.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (string, error) {
	var (
		id      string
		addedAt time.Time
	)
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO inventory (user_id, crop_name, quantity, unit, market_price, is_profitable)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, added_at
	`, item.UserID, item.CropName, item.Quantity, string(item.Unit), item.MarketPrice, item.IsProfitable).Scan(&id, &addedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrEmptyInsert
	}
	if err != nil {
		return "", err
	}
	item.ID = id
	item.AddedAt = addedAt
	return id, nil
}

// FindRecentByUserID returns up to limit items, newest first.
func (r *InventoryRepository) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]*domain.InventoryItem, error) {
	var rows []inventoryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, crop_name, quantity, unit, market_price, is_profitable, added_at
		FROM inventory
		WHERE user_id = $1
		ORDER BY added_at DESC, seq DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &domain.InventoryItem{
			ID:           row.ID,
			UserID:       row.UserID,
			CropName:     row.CropName,
			Quantity:     row.Quantity,
			Unit:         domain.Unit(row.Unit),
			MarketPrice:  row.MarketPrice,
			IsProfitable: row.IsProfitable,
			AddedAt:      row.AddedAt,
		})
	}
	return items, nil
}
