package domain

import "time"

// Unit is a measure an inventory quantity is expressed in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
	UnitQuintal  Unit = "quintal"
	UnitTonne    Unit = "tonne"
	UnitLitre    Unit = "litre"
	UnitDozen    Unit = "dozen"
	UnitPiece    Unit = "piece"
)

// IsValid reports whether u is one of the known units.
func (u Unit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitQuintal, UnitTonne, UnitLitre, UnitDozen, UnitPiece:
		return true
	}
	return false
}

const (
	DefaultInventoryLimit = 10
	MaxInventoryLimit     = 100
)

// InventoryItem is a farmer's stock record.
type InventoryItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CropName     string    `json:"crop_name"`
	Quantity     float64   `json:"quantity"`
	Unit         Unit      `json:"unit"`
	MarketPrice  float64   `json:"market_price"`
	IsProfitable bool      `json:"is_profitable"`
	AddedAt      time.Time `json:"added_at"`
}

// ClampInventoryLimit applies the default and the [1, MaxInventoryLimit] bounds.
func ClampInventoryLimit(limit int) int {
	if limit == 0 {
		return DefaultInventoryLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxInventoryLimit {
		return MaxInventoryLimit
	}
	return limit
}
