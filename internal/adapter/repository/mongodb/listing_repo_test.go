package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestListingRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create returns uuid id", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), "u1", domain.NewListing{Name: "Maize", Price: "12", Quantity: "3t", Image: "img"})

		require.NoError(mt, err)
		_, perr := uuid.Parse(id)
		assert.NoError(mt, perr)
	})

	mt.Run("create surfaces write errors", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.Create(context.Background(), "u1", domain.NewListing{Name: "Maize", Price: "12", Quantity: "3t", Image: "img"})

		assert.Error(mt, err)
	})

	mt.Run("delete owned", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := repo.DeleteOwned(context.Background(), "L1", "u1")

		require.NoError(mt, err)
		assert.EqualValues(mt, 1, n)
	})

	mt.Run("delete not matched", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n, err := repo.DeleteOwned(context.Background(), "L1", "u2")

		require.NoError(mt, err)
		assert.EqualValues(mt, 0, n)
	})

	mt.Run("find all", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		t0 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + ".listings"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a"}, {Key: "name", Value: "Maize"}, {Key: "user_id", Value: "u1"}, {Key: "created_at", Value: t0}, {Key: "created_ns", Value: int64(1)}},
			bson.D{{Key: "_id", Value: "b"}, {Key: "name", Value: "Beans"}, {Key: "description", Value: "dry"}, {Key: "user_id", Value: "u2"}, {Key: "created_at", Value: t0}, {Key: "created_ns", Value: int64(2)}},
		))

		got, err := repo.FindAll(context.Background())

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "a", got[0].ID)
		assert.Nil(mt, got[0].Description)
		require.NotNil(mt, got[1].Description)
		assert.Equal(mt, "dry", *got[1].Description)
	})

	mt.Run("find by user empty", func(mt *mtest.T) {
		repo := NewListingRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch))

		got, err := repo.FindByUserID(context.Background(), "nobody")

		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})
}

func TestInventoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create then recent", func(mt *mtest.T) {
		repo := NewInventoryRepository(mt.DB, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		item := &domain.InventoryItem{UserID: "u1", CropName: "wheat", Quantity: 1, Unit: domain.UnitTonne}
		id, err := repo.Create(context.Background(), item)
		require.NoError(mt, err)
		assert.Equal(mt, id, item.ID)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".inventory", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: "u1"}, {Key: "crop_name", Value: "wheat"}, {Key: "quantity", Value: 1.0}, {Key: "unit", Value: "tonne"}},
		))
		items, err := repo.FindRecentByUserID(context.Background(), "u1", 5)
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, domain.UnitTonne, items[0].Unit)
	})
}
