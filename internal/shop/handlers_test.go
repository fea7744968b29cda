package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goyal-store/internal/advisor"
	"goyal-store/internal/auth"
	"goyal-store/internal/catalog"
	"goyal-store/internal/events"
	"goyal-store/internal/persist"
)

const testSecret = "test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// stubGenerator answers immediately, except that with blockFirst set the
// first call signals entered and waits for its context to end
type stubGenerator struct {
	reply      string
	blockFirst bool
	entered    chan struct{}

	mu    sync.Mutex
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, _ advisor.Request) (string, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if g.blockFirst && first {
		close(g.entered)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.reply, nil
}

type harness struct {
	t      *testing.T
	store  *Store
	router *mux.Router
	pub    *recordingPublisher
	admin  string
}

func newHarness(t *testing.T, gen advisor.Generator) *harness {
	t.Helper()
	store := newTestStore(t, nil)
	pub := &recordingPublisher{}
	r := mux.NewRouter()
	NewHandler(store, advisor.New(gen), pub).Routes(r, testSecret)

	token, err := auth.IssueToken(testSecret, "owner", []string{auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	return &harness{t: t, store: store, router: r, pub: pub, admin: token}
}

func (h *harness) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) asAdmin(method, path string, body interface{}) *httptest.ResponseRecorder {
	return h.do(method, path, body, "Authorization", "Bearer "+h.admin)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func productIDs(products []catalog.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestListProducts_FilterAndSort(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodGet, "/api/products?category=Kids&sort=price-asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []catalog.Product
	decodeBody(t, rec, &got)
	assert.Equal(t, []string{"10", "8", "5"}, productIDs(got))

	rec = h.do(http.MethodGet, "/api/products?q=SAREE", nil)
	decodeBody(t, rec, &got)
	assert.Equal(t, []string{"1"}, productIDs(got))

	rec = h.do(http.MethodGet, "/api/products", nil)
	decodeBody(t, rec, &got)
	assert.Len(t, got, 11)
}

func TestGetProduct(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p catalog.Product
	decodeBody(t, rec, &p)
	assert.Equal(t, "Champagne Satin Evening Gown", p.Name)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/products/nope", nil).Code)
}

func TestFeaturedAndRelated(t *testing.T) {
	h := newHarness(t, nil)

	var got []catalog.Product
	decodeBody(t, h.do(http.MethodGet, "/api/products/featured", nil), &got)
	assert.Equal(t, []string{"1", "2", "3", "5"}, productIDs(got))

	decodeBody(t, h.do(http.MethodGet, "/api/products/6/related", nil), &got)
	assert.Equal(t, []string{"2", "3", "4", "8"}, productIDs(got))

	decodeBody(t, h.do(http.MethodGet, "/api/products/6/related?limit=2", nil), &got)
	assert.Equal(t, []string{"2", "3"}, productIDs(got))
}

func TestCartCheckoutFlow(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "10"})
	require.Equal(t, http.StatusOK, rec.Code)
	var cart cartResponse
	decodeBody(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, CartSummary{Count: 1, Subtotal: 1999, Shipping: ShippingFee, Total: 1999 + ShippingFee}, cart.Summary)

	rec = h.do(http.MethodPatch, "/api/cart/10", deltaRequest{Delta: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &cart)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 0, cart.Summary.Shipping)

	rec = h.do(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order Order
	decodeBody(t, rec, &order)
	assert.Equal(t, 3998, order.Total)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 8, mustProduct(t, h.store, "10").Stock)

	require.Len(t, h.pub.events, 1)
	assert.Equal(t, events.EventOrderCreated, h.pub.events[0].Type)
	assert.Equal(t, order.ID, h.pub.events[0].OrderID)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/checkout", nil).Code)
	assert.Len(t, h.pub.events, 1)
}

func TestAddToCart_Errors(t *testing.T) {
	h := newHarness(t, nil)
	zero := 0
	_, err := h.store.UpdateProduct(context.Background(), "9", catalog.ProductPatch{Stock: &zero})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cart", map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "1", Quantity: -2}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "x"}).Code)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "9"}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPatch, "/api/cart/1", deltaRequest{Delta: 1}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/api/cart/1", nil).Code)
}

func TestAddToCart_QuantityLimit(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "1", Quantity: math.MaxInt}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "1", Quantity: MaxLineQuantity + 1}).Code)
	assert.Empty(t, h.store.Cart())

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "1", Quantity: MaxLineQuantity}).Code)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "1", Quantity: 1}).Code)

	rec := h.do(http.MethodPatch, "/api/cart/1", deltaRequest{Delta: math.MaxInt})
	require.Equal(t, http.StatusOK, rec.Code)
	var cart cartResponse
	decodeBody(t, rec, &cart)
	assert.Equal(t, MaxLineQuantity, cart.Items[0].Quantity)
	assert.Positive(t, cart.Summary.Total)

	var order Order
	decodeBody(t, h.do(http.MethodPost, "/api/checkout", nil), &order)
	assert.Equal(t, MaxLineQuantity*12499, order.Total)
}

func TestWishlistAndRecent(t *testing.T) {
	h := newHarness(t, nil)

	var toggled map[string]interface{}
	decodeBody(t, h.do(http.MethodPost, "/api/wishlist/4/toggle", nil), &toggled)
	assert.Equal(t, true, toggled["wishlisted"])

	var got []catalog.Product
	decodeBody(t, h.do(http.MethodGet, "/api/wishlist", nil), &got)
	assert.Equal(t, []string{"4"}, productIDs(got))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/wishlist/x/toggle", nil).Code)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodPost, "/api/products/2/view", nil).Code)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodPost, "/api/products/7/view", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/products/x/view", nil).Code)
	decodeBody(t, h.do(http.MethodGet, "/api/recent", nil), &got)
	assert.Equal(t, []string{"7", "2"}, productIDs(got))
}

func TestToggleWishlist_StaleIDCanBeRemoved(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemory()
	require.NoError(t, backend.Save(ctx, "goyal_wishlist", []byte(`["gone","3"]`)))
	store := newTestStore(t, backend)
	r := mux.NewRouter()
	NewHandler(store, advisor.New(nil), &recordingPublisher{}).Routes(r, testSecret)
	h := &harness{t: t, store: store, router: r}

	var toggled map[string]interface{}
	decodeBody(t, h.do(http.MethodPost, "/api/wishlist/gone/toggle", nil), &toggled)
	assert.Equal(t, false, toggled["wishlisted"])
	assert.Equal(t, []string{"3"}, store.Wishlist())

	// once removed, an unknown id cannot be added back
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/wishlist/gone/toggle", nil).Code)
}

func TestDeleteProduct_ClearsWishlist(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/wishlist/4/toggle", nil).Code)
	require.Equal(t, http.StatusNoContent, h.do(http.MethodPost, "/api/products/4/view", nil).Code)

	require.Equal(t, http.StatusNoContent, h.asAdmin(http.MethodDelete, "/api/products/4", nil).Code)

	var got []catalog.Product
	decodeBody(t, h.do(http.MethodGet, "/api/wishlist", nil), &got)
	assert.Empty(t, got)
	assert.False(t, h.store.InWishlist("4"))
	decodeBody(t, h.do(http.MethodGet, "/api/recent", nil), &got)
	assert.Empty(t, got)
}

func TestAddReview(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/api/products/6/reviews", ReviewInput{UserName: "Dev", Rating: 4, Comment: "Sharp."})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4.0, mustProduct(t, h.store, "6").AverageRating)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/products/6/reviews", ReviewInput{Rating: 4}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/products/x/reviews", ReviewInput{UserName: "a", Rating: 3, Comment: "b"}).Code)
}

func TestAdmin_RequiresToken(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/admin/dashboard", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/orders", nil, "Authorization", "Bearer garbage").Code)

	shopper, err := auth.IssueToken(testSecret, "shopper", []string{"customer"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/products/1", nil, "Authorization", "Bearer "+shopper).Code)
	_, ok := h.store.Product("1")
	assert.True(t, ok)

	assert.Equal(t, http.StatusOK, h.asAdmin(http.MethodGet, "/api/admin/dashboard", nil).Code)
}

func TestAdmin_ProductEndpoints(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.asAdmin(http.MethodPost, "/api/products", catalog.ProductInput{
		Name: "Linen Nehru Jacket", Category: catalog.CategoryMen, Style: catalog.StyleTraditional,
		Price: 5999, Stock: 9, Image: "https://example.com/n.jpg", Description: "Breathable linen.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created catalog.Product
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)

	assert.Equal(t, http.StatusBadRequest, h.asAdmin(http.MethodPost, "/api/products", catalog.ProductInput{Name: "x"}).Code)

	price := 4999
	rec = h.asAdmin(http.MethodPut, "/api/products/"+created.ID, catalog.ProductPatch{Price: &price})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4999, mustProduct(t, h.store, created.ID).Price)
	assert.Equal(t, http.StatusNotFound, h.asAdmin(http.MethodPut, "/api/products/x", catalog.ProductPatch{Price: &price}).Code)

	rec = h.asAdmin(http.MethodPost, "/api/products/"+created.ID+"/stock", deltaRequest{Delta: -20})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, mustProduct(t, h.store, created.ID).Stock)

	rec = h.asAdmin(http.MethodPost, "/api/admin/stock/bulk", BulkStockRequest{IDs: []string{created.ID, "9"}, Action: StockRestock})
	require.Equal(t, http.StatusOK, rec.Code)
	var bulk map[string]int
	decodeBody(t, rec, &bulk)
	assert.Equal(t, 2, bulk["updated"])
	assert.Equal(t, 50, mustProduct(t, h.store, "9").Stock)
	assert.Equal(t, http.StatusBadRequest, h.asAdmin(http.MethodPost, "/api/admin/stock/bulk", BulkStockRequest{Action: "shred"}).Code)

	assert.Equal(t, http.StatusNoContent, h.asAdmin(http.MethodDelete, "/api/products/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, h.asAdmin(http.MethodDelete, "/api/products/"+created.ID, nil).Code)
}

func TestAdmin_ReviewsAndOrders(t *testing.T) {
	h := newHarness(t, nil)

	var reviews []ReviewEntry
	decodeBody(t, h.asAdmin(http.MethodGet, "/api/admin/reviews", nil), &reviews)
	assert.Len(t, reviews, 11)

	assert.Equal(t, http.StatusNoContent, h.asAdmin(http.MethodDelete, "/api/products/2/reviews/r2", nil).Code)
	assert.Equal(t, 0.0, mustProduct(t, h.store, "2").AverageRating)
	assert.Equal(t, http.StatusNotFound, h.asAdmin(http.MethodDelete, "/api/products/2/reviews/r2", nil).Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "3"}).Code)
	var order Order
	decodeBody(t, h.do(http.MethodPost, "/api/checkout", nil), &order)

	var orders []Order
	decodeBody(t, h.asAdmin(http.MethodGet, "/api/orders", nil), &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, http.StatusOK, h.asAdmin(http.MethodGet, "/api/orders/"+order.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, h.asAdmin(http.MethodGet, "/api/orders/ORD-x", nil).Code)

	rec := h.asAdmin(http.MethodPut, "/api/orders/"+order.ID+"/status", statusRequest{Status: StatusDelivered})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &order)
	assert.Equal(t, StatusDelivered, order.Status)
	require.Len(t, h.pub.events, 2)
	assert.Equal(t, events.EventOrderStatusChanged, h.pub.events[1].Type)

	assert.Equal(t, http.StatusBadRequest, h.asAdmin(http.MethodPut, "/api/orders/"+order.ID+"/status", statusRequest{Status: "Lost"}).Code)
	assert.Equal(t, http.StatusNotFound, h.asAdmin(http.MethodPut, "/api/orders/ORD-x/status", statusRequest{Status: StatusShipped}).Code)
}

func TestAdvisor_Recommend(t *testing.T) {
	h := newHarness(t, &stubGenerator{reply: `{"advice":"Go with silk.","recommendedIds":["1","99","7"]}`})

	rec := h.do(http.MethodPost, "/api/advisor/recommend", recommendRequest{Prompt: "wedding guest"})
	require.Equal(t, http.StatusOK, rec.Code)
	var got recommendResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "Go with silk.", got.Advice)
	assert.Equal(t, []string{"1", "7"}, got.RecommendedIDs)
	assert.Equal(t, []string{"1", "7"}, productIDs(got.Products))
}

func TestAdvisor_FallbackWithoutGenerator(t *testing.T) {
	h := newHarness(t, nil)

	var got recommendResponse
	decodeBody(t, h.do(http.MethodPost, "/api/advisor/recommend", recommendRequest{Prompt: "anything"}), &got)
	assert.Equal(t, advisor.FallbackAdvice, got.Advice)
	assert.True(t, got.Fallback)
	assert.Empty(t, got.Products)

	var desc map[string]string
	decodeBody(t, h.do(http.MethodPost, "/api/advisor/describe", describeRequest{Name: "Kurta"}), &desc)
	assert.Equal(t, advisor.FallbackDescription, desc["description"])
}

func TestAdvisor_NewerRequestSupersedes(t *testing.T) {
	gen := &stubGenerator{reply: "Soft cotton in a festive cut.", blockFirst: true, entered: make(chan struct{})}
	h := newHarness(t, gen)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- h.do(http.MethodPost, "/api/advisor/describe", describeRequest{Name: "Kurta"}, SessionHeader, "tab-1")
	}()
	select {
	case <-gen.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the generator")
	}

	second := h.do(http.MethodPost, "/api/advisor/describe", describeRequest{Name: "Kurta"}, SessionHeader, "tab-1")
	require.Equal(t, http.StatusOK, second.Code)
	var desc map[string]string
	decodeBody(t, second, &desc)
	assert.Equal(t, "Soft cotton in a festive cut.", desc["description"])

	select {
	case rec := <-first:
		assert.Equal(t, http.StatusConflict, rec.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("first request was not cancelled")
	}
}

func TestAdvisor_SessionsDoNotInterfere(t *testing.T) {
	gen := &stubGenerator{reply: "Pastel chikankari.", blockFirst: true, entered: make(chan struct{})}
	h := newHarness(t, gen)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan int, 1)
	go func() {
		body, _ := json.Marshal(describeRequest{Name: "Kurta"})
		req := httptest.NewRequest(http.MethodPost, "/api/advisor/describe", bytes.NewReader(body)).WithContext(ctx)
		req.Header.Set(SessionHeader, "tab-1")
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)
		first <- rec.Code
	}()
	<-gen.entered

	other := h.do(http.MethodPost, "/api/advisor/describe", describeRequest{Name: "Kurta"}, SessionHeader, "tab-2")
	assert.Equal(t, http.StatusOK, other.Code)

	// tab-1 is still current; ending its own request yields the fallback, not a conflict
	cancel()
	assert.Equal(t, http.StatusOK, <-first)
}
