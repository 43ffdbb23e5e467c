package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stylehub/storefront/pkg/httputil"
	"github.com/stylehub/storefront/pkg/validator"

	"github.com/stylehub/storefront/internal/domain"
	"github.com/stylehub/storefront/internal/service"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// WishlistItemRequest is the JSON request body for adding or toggling a
// wishlist product.
type WishlistItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title" validate:"required,min=1,max=500"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Discount  int     `json:"discount" validate:"gte=0,lte=100"`
}

type wishlistResponse struct {
	UserID string                `json:"userId"`
	Items  []domain.WishlistItem `json:"items"`
	Count  int                   `json:"count"`
}

type toggleResponse struct {
	wishlistResponse
	Added bool `json:"added"`
}

func newWishlistResponse(w *domain.Wishlist) wishlistResponse {
	return wishlistResponse{
		UserID: w.UserID,
		Items:  w.Items,
		Count:  len(w.Items),
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	wishlist, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wishlist)})
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	req, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	wishlist, err := h.service.AddItem(r.Context(), userID, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wishlist)})
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	req, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	wishlist, added, err := h.service.Toggle(r.Context(), userID, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toggleResponse{
		wishlistResponse: newWishlistResponse(wishlist),
		Added:            added,
	}})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	productID := chi.URLParam(r, "productId")

	wishlist, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wishlist)})
}

// Contains handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	productID := chi.URLParam(r, "productId")

	contained, err := h.service.Contains(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"inWishlist": contained}})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, errMissingUserID(), h.logger)
		return
	}

	if err := h.service.ClearWishlist(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

func (h *WishlistHandler) decodeItemRequest(w http.ResponseWriter, r *http.Request) (WishlistItemRequest, bool) {
	var req WishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return req, false
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return req, false
	}
	return req, true
}

func (r WishlistItemRequest) toInput() service.WishlistItemInput {
	return service.WishlistItemInput{
		ProductID: r.ProductID,
		Title:     r.Title,
		Image:     r.Image,
		Price:     r.Price,
		Discount:  r.Discount,
	}
}
