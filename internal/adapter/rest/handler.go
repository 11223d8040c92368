package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/rest/middleware"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

const maxJSONBody = 1 << 20

// Handler serves the JSON API.
type Handler struct {
	listings        ListingService
	suggestions     SuggestionService
	recommendations RecommendationService
	inventory       InventoryService
	images          ImageService
	metrics         *metrics.MetricsManager
	logger          *logger.Logger
}

type Services struct {
	Listings        ListingService
	Suggestions     SuggestionService
	Recommendations RecommendationService
	Inventory       InventoryService
	Images          ImageService // nil when object storage is not configured
}

func NewHandler(s Services, mm *metrics.MetricsManager, log *logger.Logger) *Handler {
	return &Handler{
		listings:        s.Listings,
		suggestions:     s.Suggestions,
		recommendations: s.Recommendations,
		inventory:       s.Inventory,
		images:          s.Images,
		metrics:         mm,
		logger:          log.Named("RESTHandler"),
	}
}

func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}

// decodeJSON ignores unknown fields and rejects trailing data. Owner-like
// keys are dropped because no request type carries an owner.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError(map[string]string{"body": fmt.Sprintf("invalid JSON body: %v", err)})
	}
	if dec.More() {
		return domain.NewValidationError(map[string]string{"body": "unexpected data after JSON body"})
	}
	return nil
}

func listingsOrEmpty(l []*domain.Listing) []*domain.Listing {
	if l == nil {
		return []*domain.Listing{}
	}
	return l
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetAllListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.GetAllListings(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listingsOrEmpty(listings))
}

func (h *Handler) GetListingsByUser(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.GetListingsByUser(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listingsOrEmpty(listings))
}

func (h *Handler) GetFarmerListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.GetFarmerListings(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listingsOrEmpty(listings))
}

type addListingRequest struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Quantity    string  `json:"quantity"`
	Description *string `json:"description"`
	Image       string  `json:"image"`
}

func (h *Handler) AddListing(w http.ResponseWriter, r *http.Request) {
	var req addListingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.listings.AddListing(r.Context(), middleware.CallerFromContext(r.Context()), domain.NewListing{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	err := h.listings.DeleteListing(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// priceText accepts a JSON string or number and keeps it as text.
type priceText string

func (p *priceText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = priceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a string or a number")
	}
	*p = priceText(n.String())
	return nil
}

type suggestionRequest struct {
	Price priceText `json:"price"`
}

func (h *Handler) GenerateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	suggestion, err := h.suggestions.GenerateSuggestion(r.Context(), middleware.CallerFromContext(r.Context()), string(req.Price))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, suggestion)
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.recommendations.Recommend(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

type pushInventoryRequest struct {
	CropName     string  `json:"crop_name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	MarketPrice  float64 `json:"market_price"`
	IsProfitable bool    `json:"is_profitable"`
}

func (h *Handler) PushInventory(w http.ResponseWriter, r *http.Request) {
	var req pushInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.inventory.PushInventory(r.Context(), middleware.CallerFromContext(r.Context()), domain.InventoryItem{
		CropName:     req.CropName,
		Quantity:     req.Quantity,
		Unit:         domain.Unit(req.Unit),
		MarketPrice:  req.MarketPrice,
		IsProfitable: req.IsProfitable,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) PullInventory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, domain.NewValidationError(map[string]string{"limit": "limit must be an integer"}))
			return
		}
		limit = n
	}
	items, err := h.inventory.PullInventory(r.Context(), middleware.CallerFromContext(r.Context()), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.InventoryItem{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) UploadListingImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		h.writeError(w, r, domain.NewInternalError("image storage is not configured", nil))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, domain.NewValidationError(map[string]string{"image": "image must not exceed 5 MiB"}))
			return
		}
		h.writeError(w, r, domain.NewValidationError(map[string]string{"image": "multipart form with an image file is required"}))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, r, domain.NewValidationError(map[string]string{"image": "image is required"}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImageBytes+1))
	if err != nil {
		h.writeError(w, r, domain.NewInternalError("failed to read upload", err))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.images.UploadListingImage(r.Context(), middleware.CallerFromContext(r.Context()), header.Filename, contentType, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
