package domain

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Validate trims l and reports every invalid field at once.
func (l NewListing) Validate() (NewListing, error) {
	out := NewListing{
		Name:     strings.TrimSpace(l.Name),
		Price:    strings.TrimSpace(l.Price),
		Quantity: strings.TrimSpace(l.Quantity),
		Image:    strings.TrimSpace(l.Image),
	}
	if l.Description != nil {
		if d := strings.TrimSpace(*l.Description); d != "" {
			out.Description = &d
		}
	}

	fields := map[string]string{}
	if out.Name == "" {
		fields["name"] = "name is required"
	}
	if out.Price == "" {
		fields["price"] = "price is required"
	}
	if out.Quantity == "" {
		fields["quantity"] = "quantity is required"
	}
	if out.Image == "" {
		fields["image"] = "image is required"
	}
	if len(fields) > 0 {
		return NewListing{}, NewValidationError(fields)
	}
	return out, nil
}

// ValidateListingID checks id is a UUID and returns its canonical form.
func ValidateListingID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", NewValidationError(map[string]string{"id": "id must be a valid uuid"})
	}
	return parsed.String(), nil
}

// ValidateUserID checks a user identifier passed as input (not the caller).
func ValidateUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", NewValidationError(map[string]string{"userId": "userId is required"})
	}
	return userID, nil
}

// Validate trims r and checks every field.
func (r RecommendationRequest) Validate() (RecommendationRequest, error) {
	out := RecommendationRequest{
		Crop:            strings.TrimSpace(r.Crop),
		CurrentPrice:    r.CurrentPrice,
		CurrentLocation: strings.TrimSpace(r.CurrentLocation),
	}
	fields := map[string]string{}
	if out.Crop == "" {
		fields["crop"] = "crop is required"
	}
	if math.IsNaN(out.CurrentPrice) || math.IsInf(out.CurrentPrice, 0) || out.CurrentPrice < 0 {
		fields["current_price"] = "current_price must be a non-negative number"
	}
	if out.CurrentLocation == "" {
		fields["current_location"] = "current_location is required"
	}
	if len(fields) > 0 {
		return RecommendationRequest{}, NewValidationError(fields)
	}
	return out, nil
}

// ValidateSuggestionPrice checks the generateSuggestion input.
func ValidateSuggestionPrice(price string) (string, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return "", NewValidationError(map[string]string{"price": "price is required"})
	}
	return price, nil
}

// Validate trims the item and checks every field. Owner, id and timestamp are
// not inspected; they are assigned server-side.
func (i InventoryItem) Validate() (InventoryItem, error) {
	out := i
	out.CropName = strings.TrimSpace(i.CropName)
	out.Unit = Unit(strings.ToLower(strings.TrimSpace(string(i.Unit))))

	fields := map[string]string{}
	if out.CropName == "" {
		fields["crop_name"] = "crop_name is required"
	}
	if math.IsNaN(out.Quantity) || math.IsInf(out.Quantity, 0) || out.Quantity <= 0 {
		fields["quantity"] = "quantity must be a positive number"
	}
	if !out.Unit.IsValid() {
		fields["unit"] = "unit must be one of kg, g, quintal, tonne, litre, dozen, piece"
	}
	if math.IsNaN(out.MarketPrice) || math.IsInf(out.MarketPrice, 0) || out.MarketPrice < 0 {
		fields["market_price"] = "market_price must be a non-negative number"
	}
	if len(fields) > 0 {
		return InventoryItem{}, NewValidationError(fields)
	}
	return out, nil
}

// Validate checks that every structured field of a generated suggestion is set.
func (p *PricingSuggestion) Validate() error {
	if p == nil {
		return NewIntegrityError("suggestion is empty", nil)
	}
	var missing []string
	if strings.TrimSpace(p.Suggestions.Price) == "" {
		missing = append(missing, "suggestions.price")
	}
	if strings.TrimSpace(p.Suggestions.Quantity) == "" {
		missing = append(missing, "suggestions.quantity")
	}
	if strings.TrimSpace(p.Suggestions.Place) == "" {
		missing = append(missing, "suggestions.place")
	}
	if strings.TrimSpace(p.Reasoning) == "" {
		missing = append(missing, "reasoning")
	}
	if len(missing) > 0 {
		return NewIntegrityError("suggestion is missing "+strings.Join(missing, ", "), nil)
	}
	return nil
}
