package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)
	added := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inventory")).
		WithArgs("u1", "wheat", 2.5, "tonne", 180.0, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "added_at"}).AddRow("inv-1", added))

	item := &domain.InventoryItem{UserID: "u1", CropName: "wheat", Quantity: 2.5, Unit: domain.UnitTonne, MarketPrice: 180, IsProfitable: true}
	id, err := repo.Create(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, "inv-1", id)
	assert.Equal(t, added, item.AddedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_FindRecentByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)
	t0 := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY added_at DESC, seq DESC")).
		WithArgs("u1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "crop_name", "quantity", "unit", "market_price", "is_profitable", "added_at"}).
			AddRow("i2", "u1", "rice", "3.5", "kg", "40", false, t0.Add(time.Hour)).
			AddRow("i1", "u1", "wheat", "1", "tonne", "180.25", true, t0))

	items, err := repo.FindRecentByUserID(context.Background(), "u1", 5)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "i2", items[0].ID)
	assert.Equal(t, 3.5, items[0].Quantity)
	assert.Equal(t, domain.UnitKilogram, items[0].Unit)
	assert.Equal(t, 180.25, items[1].MarketPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
