package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// Banners, GET /banners
func (c *Client) Banners(ctx context.Context) ([]models.Banner, error) {
	var out []models.Banner
	err := c.do(ctx, http.MethodGet, "/banners", nil, nil, &out)
	return out, err
}

// Categories, GET /categories
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

// Category, GET /categories/{id}
func (c *Client) Category(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products, GET /products; boş filtreler sorguya eklenmez.
func (c *Client) Products(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	query := url.Values{}
	if q.CategoryID != "" {
		query.Set("category_id", q.CategoryID)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Featured {
		query.Set("featured", "true")
	}
	if q.OnSale {
		query.Set("on_sale", "true")
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		query.Set("skip", strconv.Itoa(q.Skip))
	}

	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/products", query, nil, &out)
	return out, err
}

// Product, GET /products/{id}
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCart, GET /cart/{session_id}
func (c *Client) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	var out models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/"+escape(sessionID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart, POST /cart/{session_id}/add
func (c *Client) AddToCart(ctx context.Context, sessionID, productID string, quantity int) error {
	body := models.CartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart/"+escape(sessionID)+"/add", nil, body, nil)
}

// UpdateCartItem, PUT /cart/{session_id}/update
func (c *Client) UpdateCartItem(ctx context.Context, sessionID, productID string, quantity int) error {
	body := models.CartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPut, "/cart/"+escape(sessionID)+"/update", nil, body, nil)
}

// RemoveFromCart, DELETE /cart/{session_id}/remove/{product_id}
func (c *Client) RemoveFromCart(ctx context.Context, sessionID, productID string) error {
	path := "/cart/" + escape(sessionID) + "/remove/" + escape(productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ClearCart, DELETE /cart/{session_id}/clear
func (c *Client) ClearCart(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+escape(sessionID)+"/clear", nil, nil, nil)
}

// GetFavorites, GET /favorites/{session_id}
func (c *Client) GetFavorites(ctx context.Context, sessionID string) (*models.Favorites, error) {
	var out models.Favorites
	if err := c.do(ctx, http.MethodGet, "/favorites/"+escape(sessionID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleFavorite, POST /favorites/{session_id}/toggle/{product_id}
func (c *Client) ToggleFavorite(ctx context.Context, sessionID, productID string) (*models.FavoriteToggle, error) {
	var out models.FavoriteToggle
	path := "/favorites/" + escape(sessionID) + "/toggle/" + escape(productID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder, POST /orders
func (c *Client) CreateOrder(ctx context.Context, order models.OrderCreate) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders, GET /orders/{session_id}
func (c *Client) Orders(ctx context.Context, sessionID string) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+escape(sessionID), nil, nil, &out)
	return out, err
}

// Order, GET /orders/{session_id}/{order_id}
func (c *Client) Order(ctx context.Context, sessionID, orderID string) (*models.Order, error) {
	var out models.Order
	path := "/orders/" + escape(sessionID) + "/" + escape(orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
