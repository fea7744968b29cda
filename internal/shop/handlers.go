package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"goyal-store/internal/advisor"
	"goyal-store/internal/auth"
	"goyal-store/internal/catalog"
	"goyal-store/internal/events"
	"goyal-store/internal/logger"
)

// SessionHeader scopes advisor request tracking to one browser tab
const SessionHeader = "X-Session-ID"

// Handler handles HTTP requests for storefront operations
type Handler struct {
	store    *Store
	advisor  *advisor.Advisor
	trackers *advisor.Trackers
	events   events.Publisher
}

// NewHandler creates a new storefront handler. A nil publisher drops events.
func NewHandler(store *Store, adv *advisor.Advisor, pub events.Publisher) *Handler {
	if adv == nil {
		adv = advisor.New(nil)
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler{store: store, advisor: adv, trackers: &advisor.Trackers{}, events: pub}
}

// Routes registers every storefront endpoint on r. Admin endpoints require a
// JWT signed with secret that carries the admin role.
func (h *Handler) Routes(r *mux.Router, secret string) {
	admin := func(next http.HandlerFunc) http.HandlerFunc { return RequireAdmin(secret, next) }

	// Public read endpoints (no authentication required)
	r.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/featured", h.FeaturedProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}/related", h.RelatedProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}/view", h.MarkViewed).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{id}/reviews", h.AddReview).Methods(http.MethodPost)
	r.HandleFunc("/api/recent", h.RecentlyViewed).Methods(http.MethodGet)

	r.HandleFunc("/api/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/{id}", h.UpdateCartQuantity).Methods(http.MethodPatch)
	r.HandleFunc("/api/cart/{id}", h.RemoveFromCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/checkout", h.Checkout).Methods(http.MethodPost)

	r.HandleFunc("/api/wishlist", h.GetWishlist).Methods(http.MethodGet)
	r.HandleFunc("/api/wishlist/{id}/toggle", h.ToggleWishlist).Methods(http.MethodPost)

	r.HandleFunc("/api/advisor/recommend", h.Recommend).Methods(http.MethodPost)
	r.HandleFunc("/api/advisor/describe", h.Describe).Methods(http.MethodPost)

	// Protected admin endpoints (require JWT with admin role)
	r.HandleFunc("/api/admin/dashboard", admin(h.Dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/reviews", admin(h.ListReviews)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/stock/bulk", admin(h.BulkStock)).Methods(http.MethodPost)
	r.HandleFunc("/api/products", admin(h.CreateProduct)).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{id}", admin(h.UpdateProduct)).Methods(http.MethodPut)
	r.HandleFunc("/api/products/{id}", admin(h.DeleteProduct)).Methods(http.MethodDelete)
	r.HandleFunc("/api/products/{id}/stock", admin(h.AdjustStock)).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{id}/reviews/{reviewId}", admin(h.DeleteReview)).Methods(http.MethodDelete)
	r.HandleFunc("/api/orders", admin(h.ListOrders)).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{id}", admin(h.GetOrder)).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{id}/status", admin(h.UpdateOrderStatus)).Methods(http.MethodPut)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debugf("writeJSON: %v", err)
	}
}

func decode(r *http.Request, dst interface{}) bool {
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

// queryList accepts both repeated and comma separated values
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := catalog.Criteria{Text: q.Get("q")}
	for _, c := range queryList(r, "category") {
		criteria.Categories = append(criteria.Categories, catalog.Category(c))
	}
	for _, s := range queryList(r, "style") {
		criteria.Styles = append(criteria.Styles, catalog.Style(s))
	}

	products := catalog.Filter(h.store.Products(), criteria)
	products = catalog.Sort(products, catalog.ParseSortMode(q.Get("sort")))
	writeJSON(w, http.StatusOK, products)
}

// FeaturedProducts handles GET /api/products/featured
func (h *Handler) FeaturedProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Featured(h.store.Products()))
}

// GetProduct handles GET /api/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.store.Product(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// RelatedProducts handles GET /api/products/{id}/related
func (h *Handler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	product, ok := h.store.Product(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, catalog.Related(product, h.store.Products(), limit))
}

// MarkViewed handles POST /api/products/{id}/view
func (h *Handler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	if !h.store.MarkViewed(r.Context(), mux.Vars(r)["id"]) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecentlyViewed handles GET /api/recent
func (h *Handler) RecentlyViewed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.RecentlyViewed())
}

// AddReview handles POST /api/products/{id}/reviews
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewInput
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.Comment) == "" {
		http.Error(w, "userName and comment are required", http.StatusBadRequest)
		return
	}

	review, ok := h.store.AddReview(r.Context(), mux.Vars(r)["id"], req)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type cartResponse struct {
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}

func (h *Handler) cart() cartResponse {
	return cartResponse{Items: h.store.Cart(), Summary: h.store.CartSummary()}
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cart())
}

// AddToCartRequest is the body of POST /api/cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart handles POST /api/cart
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decode(r, &req) || req.ProductID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > MaxLineQuantity {
		http.Error(w, fmt.Sprintf("quantity must be between 1 and %d", MaxLineQuantity), http.StatusBadRequest)
		return
	}

	product, ok := h.store.Product(req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if !h.store.AddToCart(r.Context(), product, req.Quantity) {
		if product.Stock <= 0 {
			http.Error(w, "product out of stock", http.StatusConflict)
			return
		}
		http.Error(w, "cart line quantity limit reached", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, h.cart())
}

type deltaRequest struct {
	Delta int `json:"delta"`
}

// UpdateCartQuantity handles PATCH /api/cart/{id}
func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !h.store.UpdateCartQuantity(r.Context(), mux.Vars(r)["id"], req.Delta) {
		http.Error(w, "item not in cart", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.cart())
}

// RemoveFromCart handles DELETE /api/cart/{id}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if !h.store.RemoveFromCart(r.Context(), mux.Vars(r)["id"]) {
		http.Error(w, "item not in cart", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, ok := h.store.Checkout(r.Context())
	if !ok {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}

	h.publish(r.Context(), events.New(events.EventOrderCreated, order.ID, map[string]any{
		"customerName": order.CustomerName,
		"items":        len(order.Items),
		"total":        order.Total,
		"status":       order.Status,
	}))
	writeJSON(w, http.StatusCreated, order)
}

// publish never fails the request; the order is already committed
func (h *Handler) publish(ctx context.Context, e events.Event) {
	if err := h.events.Publish(ctx, e); err != nil {
		logger.Warnf("publish %s for %s: %v", e.Type, e.OrderID, err)
	}
}

// GetWishlist handles GET /api/wishlist
func (h *Handler) GetWishlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.WishlistProducts())
}

// ToggleWishlist handles POST /api/wishlist/{id}/toggle. An id already in the
// wishlist can always be toggled off, even when the product is gone.
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.store.Product(id); !ok && !h.store.InWishlist(id) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	in := h.store.ToggleWishlist(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"productId": id, "wishlisted": in})
}

// RequireAdmin is middleware that requires a valid JWT token with admin role
func RequireAdmin(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.GetBearerToken(r)
		if tokenStr == "" {
			logger.Debugf("RequireAdmin: no bearer token provided")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			logger.Debugf("RequireAdmin: JWT parse error: %v", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !auth.HasRole(claims.Roles, auth.RoleAdmin) {
			logger.Debugf("RequireAdmin: %s lacks admin role", claims.Subject)
			http.Error(w, "forbidden - admin role required", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}
