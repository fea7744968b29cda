package shop

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"goyal-store/internal/catalog"
	"goyal-store/internal/events"
	"goyal-store/internal/logger"
)

// Dashboard handles GET /api/admin/dashboard (admin only)
func (h *Handler) Dashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Dashboard())
}

// ListReviews handles GET /api/admin/reviews (admin only)
func (h *Handler) ListReviews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AllReviews())
}

// CreateProduct handles POST /api/products (admin only)
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.ProductInput
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.store.AddProduct(r.Context(), req)
	if errors.Is(err, ErrInvalidProduct) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Errorf("CreateProduct: %v", err)
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id} (admin only)
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.ProductPatch
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), mux.Vars(r)["id"], req)
	if errors.Is(err, ErrInvalidProduct) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Errorf("UpdateProduct: %v", err)
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id} (admin only)
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteProduct(r.Context(), mux.Vars(r)["id"]) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock handles POST /api/products/{id}/stock (admin only)
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	if !h.store.AdjustStock(r.Context(), id, req.Delta) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	product, _ := h.store.Product(id)
	writeJSON(w, http.StatusOK, product)
}

// BulkStockRequest is the body of POST /api/admin/stock/bulk
type BulkStockRequest struct {
	IDs    []string    `json:"ids"`
	Action StockAction `json:"action"`
}

// BulkStock handles POST /api/admin/stock/bulk (admin only)
func (h *Handler) BulkStock(w http.ResponseWriter, r *http.Request) {
	var req BulkStockRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	n, err := h.store.BulkStock(r.Context(), req.IDs, req.Action)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}

// DeleteReview handles DELETE /api/products/{id}/reviews/{reviewId} (admin only)
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !h.store.DeleteReview(r.Context(), vars["id"], vars["reviewId"]) {
		http.Error(w, "review not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/orders (admin only)
func (h *Handler) ListOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Orders())
}

// GetOrder handles GET /api/orders/{id} (admin only)
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status (admin only)
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(r, &req) || !req.Status.Valid() {
		http.Error(w, "status must be Pending, Shipped or Delivered", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	if !h.store.UpdateOrder(r.Context(), id, req.Status) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	order, _ := h.store.Order(id)
	h.publish(r.Context(), events.New(events.EventOrderStatusChanged, id, map[string]any{
		"status": order.Status,
	}))
	writeJSON(w, http.StatusOK, order)
}
