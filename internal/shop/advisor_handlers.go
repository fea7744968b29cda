package shop

import (
	"net/http"

	"goyal-store/internal/advisor"
	"goyal-store/internal/catalog"
)

type recommendRequest struct {
	Prompt string `json:"prompt"`
}

type recommendResponse struct {
	advisor.Recommendation
	Products []catalog.Product `json:"products"`
}

type describeRequest struct {
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
	Style    catalog.Style    `json:"style"`
}

// tracker returns the request tracker for one call site in the caller's session
func (h *Handler) tracker(site string, r *http.Request) *advisor.Tracker {
	session := r.Header.Get(SessionHeader)
	if session == "" {
		session = "anonymous"
	}
	return h.trackers.For(site + ":" + session)
}

// superseded answers a request whose result a newer one has replaced
func superseded(w http.ResponseWriter) {
	http.Error(w, "superseded by a newer request", http.StatusConflict)
}

// Recommend handles POST /api/advisor/recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t := h.tracker("recommend", r)
	ctx, tok, done := t.Begin(r.Context())
	defer done()

	// snapshot first; the store lock is never held across the model call
	products := h.store.Products()
	rec := h.advisor.StyleRecommendation(ctx, req.Prompt, products)
	if !t.Current(tok) {
		superseded(w)
		return
	}

	resp := recommendResponse{Recommendation: rec, Products: []catalog.Product{}}
	for _, id := range rec.RecommendedIDs {
		if i := catalog.Find(products, id); i >= 0 {
			resp.Products = append(resp.Products, products[i])
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Describe handles POST /api/advisor/describe
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t := h.tracker("describe", r)
	ctx, tok, done := t.Begin(r.Context())
	defer done()

	desc := h.advisor.GenerateDescription(ctx, req.Name, req.Category, req.Style)
	if !t.Current(tok) {
		superseded(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": desc})
}
