package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/jmoiron/sqlx"
)

const listingColumns = `id, name, price, quantity, description, image, user_id, created_at`

type listingRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Price       string         `db:"price"`
	Quantity    string         `db:"quantity"`
	Description sql.NullString `db:"description"`
	Image       string         `db:"image"`
	UserID      string         `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r listingRow) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Quantity:  r.Quantity,
		Image:     r.Image,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
	if r.Description.Valid {
		d := r.Description.String
		l.Description = &d
	}
	return l
}

type ListingRepository struct {
	db *sqlx.DB
}

var _ domain.ListingRepository = (*ListingRepository)(nil)

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts l for userID. Id and created_at are assigned by the database.
func (r *ListingRepository) Create(ctx context.Context, userID string, l domain.NewListing) (string, error) {
	var id string
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO listings (name, price, quantity, description, image, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, l.Name, l.Price, l.Quantity, l.Description, l.Image, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrEmptyInsert
	}
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", domain.ErrEmptyInsert
	}
	return id, nil
}

// DeleteOwned deletes the row only if both id and owner match, in one statement.
func (r *ListingRepository) DeleteOwned(ctx context.Context, id, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+listingColumns+`
		FROM listings
		ORDER BY created_at ASC, seq ASC
	`)
	if err != nil {
		return nil, err
	}
	return toDomainListings(rows), nil
}

func (r *ListingRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Listing, error) {
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE user_id = $1
		ORDER BY created_at ASC, seq ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return toDomainListings(rows), nil
}

func toDomainListings(rows []listingRow) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
