package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// Home, ana sayfada gösterilen dört listedir.
type Home struct {
	Banners    []models.Banner
	Categories []models.Category
	Featured   []models.Product
	OnSale     []models.Product
}

// CategoryPage, kategori ve ürünleridir.
type CategoryPage struct {
	Category models.Category
	Products []models.Product
}

// Catalog, salt okunur katalog uç noktalarını ekran bazında birleştirir.
type Catalog struct {
	api    CatalogAPI
	logger *zap.Logger
}

// NewCatalog, yeni bir Catalog örneği oluşturur
func NewCatalog(api CatalogAPI, logger *zap.Logger) *Catalog {
	return &Catalog{api: api, logger: logger}
}

// Home, kampanyaları, kategorileri, öne çıkan ve indirimli ürünleri getirir.
func (c *Catalog) Home(ctx context.Context) (*Home, error) {
	var (
		home Home
		err  error
	)
	if home.Banners, err = c.api.Banners(ctx); err != nil {
		return nil, errors.Wrap(err, "banners")
	}
	if home.Categories, err = c.api.Categories(ctx); err != nil {
		return nil, errors.Wrap(err, "categories")
	}
	if home.Featured, err = c.api.Products(ctx, models.ProductQuery{Featured: true}); err != nil {
		return nil, errors.Wrap(err, "featured products")
	}
	if home.OnSale, err = c.api.Products(ctx, models.ProductQuery{OnSale: true}); err != nil {
		return nil, errors.Wrap(err, "on-sale products")
	}
	c.logger.Debug("Catalog.Home",
		zap.Int("banners", len(home.Banners)),
		zap.Int("categories", len(home.Categories)),
		zap.Int("featured", len(home.Featured)),
		zap.Int("on_sale", len(home.OnSale)))
	return &home, nil
}

// Category, kategoriyi ve o kategorideki ürünleri getirir.
func (c *Catalog) Category(ctx context.Context, id string) (*CategoryPage, error) {
	category, err := c.api.Category(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "category %s", id)
	}
	products, err := c.api.Products(ctx, models.ProductQuery{CategoryID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "products of %s", id)
	}
	return &CategoryPage{Category: *category, Products: products}, nil
}

// Search, ürün arar. Boş terim için istek yapılmaz ve boş liste döner.
func (c *Catalog) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}
	products, err := c.api.Products(ctx, models.ProductQuery{Search: term})
	if err != nil {
		return nil, errors.Wrapf(err, "search %q", term)
	}
	return products, nil
}

// Product, ürün detayını getirir.
func (c *Catalog) Product(ctx context.Context, id string) (*models.Product, error) {
	product, err := c.api.Product(ctx, id)
	return product, errors.Wrapf(err, "product %s", id)
}
