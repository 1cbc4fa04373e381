package services

import (
	"context"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// SessionResolver, kurulumun oturum kimliğini çözer (bkz. session.Identity).
type SessionResolver interface {
	Ensure(ctx context.Context) (string, error)
}

// CartAPI, sepet uç noktalarını tanımlar.
type CartAPI interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddToCart(ctx context.Context, sessionID, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, sessionID, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, sessionID, productID string) error
	ClearCart(ctx context.Context, sessionID string) error
}

// FavoritesAPI, favori uç noktalarını tanımlar.
type FavoritesAPI interface {
	GetFavorites(ctx context.Context, sessionID string) (*models.Favorites, error)
	ToggleFavorite(ctx context.Context, sessionID, productID string) (*models.FavoriteToggle, error)
}

// OrderAPI, sipariş uç noktalarını tanımlar.
type OrderAPI interface {
	CreateOrder(ctx context.Context, order models.OrderCreate) (*models.Order, error)
	Orders(ctx context.Context, sessionID string) ([]models.Order, error)
	Order(ctx context.Context, sessionID, orderID string) (*models.Order, error)
}

// CatalogAPI, katalog uç noktalarını tanımlar.
type CatalogAPI interface {
	Banners(ctx context.Context) ([]models.Banner, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, id string) (*models.Category, error)
	Products(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
}

// productIndex, ürün kayıtlarını kimliğe göre indeksler; tekrar eden kimliklerde ilki kalır.
func productIndex(products []models.Product) ([]models.Product, map[string]int) {
	out := make([]models.Product, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out, index
}
