package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/database"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.NewDatabase("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	return NewRouter(db, zaptest.NewLogger(t))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["detail"]
}

func TestRoot(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodGet, "/api/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec)["status"]; got != "running" {
		t.Errorf("status field = %q", got)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestCatalogRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/categories", nil)
	if got := len(decode[[]models.Category](t, rec)); got != 8 {
		t.Errorf("categories = %d", got)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/categories/cat_missing", nil)
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Category not found" {
		t.Errorf("missing category = %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products?featured=true&category_id=cat_bakery", nil)
	var ids []string
	for _, p := range decode[[]models.Product](t, rec) {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"prod_16"}, ids); diff != "" {
		t.Errorf("featured bakery mismatch (-want +got):\n%s", diff)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products?limit=101", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("limit over max status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products/prod_16", nil)
	if p := decode[models.Product](t, rec); p.Price != 12.90 {
		t.Errorf("prod_16 = %+v", p)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/banners", nil)
	banners := decode[[]models.Banner](t, rec)
	if len(banners) != 3 || banners[2].LinkType != models.BannerLinkPromo || banners[2].LinkID != nil {
		t.Errorf("banners = %+v", banners)
	}
}

func TestCartRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/cart/s1", nil)
	if cart := decode[models.Cart](t, rec); cart.Items == nil || len(cart.Items) != 0 {
		t.Errorf("empty cart = %s", rec.Body)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/cart/s1/update", map[string]any{"product_id": "prod_1", "quantity": 2})
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Cart not found" {
		t.Errorf("update without cart = %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add = %d %s", rec.Code, rec.Body)
	}
	doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_1", "quantity": 2})

	rec = doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_999"})
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Product not found" {
		t.Errorf("add unknown = %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"quantity": 2})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("add without product_id = %d", rec.Code)
	}

	cart := decode[models.Cart](t, doJSON(t, h, http.MethodGet, "/api/cart/s1", nil))
	if diff := cmp.Diff([]models.CartItem{{ProductID: "prod_1", Quantity: 3}}, cart.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/cart/s1/update", map[string]any{"product_id": "prod_2", "quantity": 2})
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Item not in cart" {
		t.Errorf("update missing item = %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/cart/s1/update", map[string]any{"product_id": "prod_1", "quantity": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("update to zero = %d", rec.Code)
	}
	cart = decode[models.Cart](t, doJSON(t, h, http.MethodGet, "/api/cart/s1", nil))
	if len(cart.Items) != 0 {
		t.Errorf("items after update 0 = %v", cart.Items)
	}

	doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_3"})
	if rec := doJSON(t, h, http.MethodDelete, "/api/cart/s1/remove/prod_3", nil); rec.Code != http.StatusOK {
		t.Errorf("remove = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodDelete, "/api/cart/s1/clear", nil); rec.Code != http.StatusOK {
		t.Errorf("clear = %d", rec.Code)
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	h := newTestRouter(t)

	doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_1", "quantity": 2})

	for _, qty := range []int{0, -5} {
		rec := doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_1", "quantity": qty})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("add quantity %d = %d %s, want 422", qty, rec.Code, rec.Body)
		}
	}

	cart := decode[models.Cart](t, doJSON(t, h, http.MethodGet, "/api/cart/s1", nil))
	if diff := cmp.Diff([]models.CartItem{{ProductID: "prod_1", Quantity: 2}}, cart.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/cart/s2/add", map[string]any{"product_id": "prod_1", "quantity": 0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("add quantity 0 to new cart = %d", rec.Code)
	}
	if cart := decode[models.Cart](t, doJSON(t, h, http.MethodGet, "/api/cart/s2", nil)); len(cart.Items) != 0 {
		t.Errorf("new cart items = %v, want empty", cart.Items)
	}
}

func TestFavoriteRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/favorites/s1/toggle/prod_4", nil)
	if got := decode[models.FavoriteToggle](t, rec); !got.IsFavorite {
		t.Errorf("first toggle = %+v", got)
	}
	fav := decode[models.Favorites](t, doJSON(t, h, http.MethodGet, "/api/favorites/s1", nil))
	if diff := cmp.Diff([]string{"prod_4"}, fav.ProductIDs); diff != "" || len(fav.Products) != 1 {
		t.Errorf("favorites = %+v", fav)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/favorites/s1/toggle/prod_4", nil)
	if got := decode[models.FavoriteToggle](t, rec); got.IsFavorite {
		t.Errorf("second toggle = %+v", got)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/favorites/s1/toggle/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown product toggle = %d", rec.Code)
	}
}

func TestOrderRoutes(t *testing.T) {
	h := newTestRouter(t)
	create := models.OrderCreate{
		SessionID: "s1",
		DeliveryAddress: models.DeliveryAddress{
			FullName: "Ayşe", Phone: "0532", Address: "Cad. 1", City: "İstanbul", District: "Kadıköy",
		},
		DeliveryDate:     "2025-10-20",
		DeliveryTimeSlot: "09:00 - 12:00",
		PaymentMethod:    models.PaymentCashOnDelivery,
	}

	rec := doJSON(t, h, http.MethodPost, "/api/orders", create)
	if rec.Code != http.StatusBadRequest || detail(t, rec) != "Cart is empty" {
		t.Errorf("empty cart order = %d %s", rec.Code, rec.Body)
	}

	doJSON(t, h, http.MethodPost, "/api/cart/s1/add", map[string]any{"product_id": "prod_16", "quantity": 2})
	rec = doJSON(t, h, http.MethodPost, "/api/orders", create)
	if rec.Code != http.StatusOK {
		t.Fatalf("create order = %d %s", rec.Code, rec.Body)
	}
	order := decode[models.Order](t, rec)
	if order.Total != 40.70 || order.Status != models.StatusConfirmed || len(order.Items) != 1 {
		t.Errorf("order = %+v", order)
	}

	orders := decode[[]models.Order](t, doJSON(t, h, http.MethodGet, "/api/orders/s1", nil))
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("orders = %+v", orders)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/orders/s2/"+order.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("other session's order = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/orders/s1/"+order.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("own order = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/cart/s1/add", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
