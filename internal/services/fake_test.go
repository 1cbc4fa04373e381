package services

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/api"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

type fixedIdentity struct {
	id    string
	err   error
	calls int
}

func (f *fixedIdentity) Ensure(context.Context) (string, error) {
	f.calls++
	return f.id, f.err
}

// call is one recorded mutation against fakeBackend.
type call struct {
	Method    string
	ProductID string
	Quantity  int
}

// fakeBackend mirrors the storefront's cart, favorites and order semantics in memory.
type fakeBackend struct {
	mu       sync.Mutex
	products map[string]models.Product
	cart     []models.CartItem
	favs     []string
	orders   []models.Order
	calls    []call

	// fail makes the named method return the error.
	fail map[string]error
	// getCart, when set, replaces GetCart.
	getCart func(ctx context.Context, sessionID string) (*models.Cart, error)
	// getFavorites, when set, runs first in GetFavorites; a nil result falls
	// through to the stored favorites.
	getFavorites func(ctx context.Context, sessionID string) (*models.Favorites, error)
	// beforeToggle runs before ToggleFavorite touches state.
	beforeToggle func()
}

func newFakeBackend(products ...models.Product) *fakeBackend {
	fb := &fakeBackend{products: map[string]models.Product{}, fail: map[string]error{}}
	for _, p := range products {
		fb.products[p.ID] = p
	}
	return fb
}

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: id, NameTR: id, Price: price, Unit: "adet", Stock: 10}
}

func notFound(method, path, detail string) error {
	return &api.StatusError{Method: method, Path: path, Code: http.StatusNotFound, Detail: detail}
}

func (fb *fakeBackend) record(method, productID string, quantity int) error {
	fb.calls = append(fb.calls, call{Method: method, ProductID: productID, Quantity: quantity})
	return fb.fail[method]
}

func (fb *fakeBackend) recorded() []call {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.calls)
}

func (fb *fakeBackend) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	if fb.getCart != nil {
		return fb.getCart(ctx, sessionID)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.fail["GetCart"]; err != nil {
		return nil, err
	}
	cart := &models.Cart{SessionID: sessionID, Items: slices.Clone(fb.cart), Products: []models.Product{}}
	for _, item := range fb.cart {
		if p, ok := fb.products[item.ProductID]; ok {
			cart.Products = append(cart.Products, p)
		}
	}
	return cart, nil
}

func (fb *fakeBackend) AddToCart(_ context.Context, _ string, productID string, quantity int) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("AddToCart", productID, quantity); err != nil {
		return err
	}
	if _, ok := fb.products[productID]; !ok {
		return notFound(http.MethodPost, "/cart/s/add", "Product not found")
	}
	for i := range fb.cart {
		if fb.cart[i].ProductID == productID {
			fb.cart[i].Quantity += quantity
			return nil
		}
	}
	fb.cart = append(fb.cart, models.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (fb *fakeBackend) UpdateCartItem(_ context.Context, _ string, productID string, quantity int) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("UpdateCartItem", productID, quantity); err != nil {
		return err
	}
	for i := range fb.cart {
		if fb.cart[i].ProductID == productID {
			fb.cart[i].Quantity = quantity
			return nil
		}
	}
	return notFound(http.MethodPut, "/cart/s/update", "Item not in cart")
}

func (fb *fakeBackend) RemoveFromCart(_ context.Context, _ string, productID string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("RemoveFromCart", productID, 0); err != nil {
		return err
	}
	fb.cart = slices.DeleteFunc(fb.cart, func(item models.CartItem) bool { return item.ProductID == productID })
	return nil
}

func (fb *fakeBackend) ClearCart(context.Context, string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("ClearCart", "", 0); err != nil {
		return err
	}
	fb.cart = nil
	return nil
}

func (fb *fakeBackend) GetFavorites(ctx context.Context, sessionID string) (*models.Favorites, error) {
	if fb.getFavorites != nil {
		if fav, err := fb.getFavorites(ctx, sessionID); fav != nil || err != nil {
			return fav, err
		}
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.fail["GetFavorites"]; err != nil {
		return nil, err
	}
	fav := &models.Favorites{SessionID: sessionID, ProductIDs: slices.Clone(fb.favs), Products: []models.Product{}}
	if fav.ProductIDs == nil {
		fav.ProductIDs = []string{}
	}
	for _, id := range fb.favs {
		if p, ok := fb.products[id]; ok {
			fav.Products = append(fav.Products, p)
		}
	}
	return fav, nil
}

func (fb *fakeBackend) ToggleFavorite(_ context.Context, _ string, productID string) (*models.FavoriteToggle, error) {
	if fb.beforeToggle != nil {
		fb.beforeToggle()
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("ToggleFavorite", productID, 0); err != nil {
		return nil, err
	}
	if _, ok := fb.products[productID]; !ok {
		return nil, notFound(http.MethodPost, "/favorites/s/toggle", "Product not found")
	}
	if slices.Contains(fb.favs, productID) {
		fb.favs = slices.DeleteFunc(fb.favs, func(id string) bool { return id == productID })
		return &models.FavoriteToggle{Message: "Removed from favorites", IsFavorite: false}, nil
	}
	fb.favs = append(fb.favs, productID)
	return &models.FavoriteToggle{Message: "Added to favorites", IsFavorite: true}, nil
}

func (fb *fakeBackend) CreateOrder(_ context.Context, req models.OrderCreate) (*models.Order, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.record("CreateOrder", "", 0); err != nil {
		return nil, err
	}
	order := models.Order{
		ID:               fmt.Sprintf("order-%04d-abcdef", len(fb.orders)+1),
		SessionID:        req.SessionID,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryDate:     req.DeliveryDate,
		DeliveryTimeSlot: req.DeliveryTimeSlot,
		PaymentMethod:    req.PaymentMethod,
		Status:           models.StatusConfirmed,
	}
	fb.orders = append([]models.Order{order}, fb.orders...)
	fb.cart = nil
	return &order, nil
}

func (fb *fakeBackend) Orders(_ context.Context, sessionID string) ([]models.Order, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.fail["Orders"]; err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range fb.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (fb *fakeBackend) Order(_ context.Context, sessionID, orderID string) (*models.Order, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, o := range fb.orders {
		if o.ID == orderID && o.SessionID == sessionID {
			return &o, nil
		}
	}
	return nil, notFound(http.MethodGet, "/orders/"+sessionID+"/"+orderID, "Order not found")
}
