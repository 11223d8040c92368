package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var listingCols = []string{"id", "name", "price", "quantity", "description", "image", "user_id", "created_at"}

func TestListingRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO listings (name, price, quantity, description, image, user_id)")).
		WithArgs("Tomatoes", "40", "10kg", sqlmock.AnyArg(), "http://x/img.png", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("7c9e6679-7425-40de-944b-e07fc1f90ae7"))

	id, err := repo.Create(context.Background(), "u1", domain.NewListing{
		Name: "Tomatoes", Price: "40", Quantity: "10kg", Image: "http://x/img.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_CreateNoRowIsEmptyInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery("INSERT INTO listings").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Create(context.Background(), "u1", domain.NewListing{Name: "a", Price: "1", Quantity: "1", Image: "i"})

	assert.ErrorIs(t, err, domain.ErrEmptyInsert)
}

func TestListingRepository_DeleteOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)
	stmt := regexp.QuoteMeta("DELETE FROM listings WHERE id = $1 AND user_id = $2")

	mock.ExpectExec(stmt).WithArgs("L1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(stmt).WithArgs("L1", "u2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(stmt).WithArgs("L2", "u1").WillReturnError(errors.New("conn reset"))

	n, err := repo.DeleteOwned(context.Background(), "L1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteOwned(context.Background(), "L1", "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = repo.DeleteOwned(context.Background(), "L2", "u1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_FindAllOrdered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC, seq ASC")).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow("a", "Wheat", "20", "1t", nil, "img-a", "u1", t0).
			AddRow("b", "Rice", "30", "2t", "long grain", "img-b", "u2", t0))

	got, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Nil(t, got[0].Description)
	require.NotNil(t, got[1].Description)
	assert.Equal(t, "long grain", *got[1].Description)
}

func TestListingRepository_FindByUserIDEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).WithArgs("u9").
		WillReturnRows(sqlmock.NewRows(listingCols))

	got, err := repo.FindByUserID(context.Background(), "u9")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
