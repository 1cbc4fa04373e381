package services

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// CartStore, oturumun sepetini ve sepeti çizmek için gereken ürünleri tutar.
// Her değişiklikten sonra sepet sunucudan toptan yeniden okunur; iyimser güncelleme yoktur.
type CartStore struct {
	api      CartAPI
	identity SessionResolver
	logger   *zap.Logger

	mu        sync.RWMutex
	sessionID string
	items     []models.CartItem
	products  []models.Product
	index     map[string]int
	loading   bool
	seq       uint64
}

// NewCartStore, yeni bir CartStore örneği oluşturur
func NewCartStore(api CartAPI, identity SessionResolver, logger *zap.Logger) *CartStore {
	return &CartStore{
		api:      api,
		identity: identity,
		logger:   logger,
		items:    []models.CartItem{},
		products: []models.Product{},
		index:    map[string]int{},
	}
}

// InitSession, oturum kimliğini çözer ve sepeti getirir. Yeniden deneme yapılmaz.
func (cs *CartStore) InitSession(ctx context.Context) error {
	sessionID, err := cs.identity.Ensure(ctx)
	if err != nil {
		cs.logger.Error("CartStore.InitSession - session unavailable", zap.Error(err))
		return err
	}

	cs.mu.Lock()
	cs.sessionID = sessionID
	cs.mu.Unlock()

	return cs.FetchCart(ctx)
}

// FetchCart, sepeti sunucudan okur ve yerel durumu toptan değiştirir. Loading
// bayrağı hata olsa da temizlenir. Daha yeni bir okuma başlatıldıysa yanıt atılır.
func (cs *CartStore) FetchCart(ctx context.Context) error {
	cs.mu.Lock()
	sessionID := cs.sessionID
	if sessionID == "" {
		cs.mu.Unlock()
		return nil
	}
	cs.seq++
	seq := cs.seq
	cs.loading = true
	cs.mu.Unlock()

	cart, err := cs.api.GetCart(ctx, sessionID)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if seq != cs.seq {
		cs.logger.Debug("CartStore.FetchCart - discarding stale response",
			zap.Uint64("seq", seq), zap.Uint64("latest", cs.seq))
		return errors.Wrap(err, "fetch cart")
	}
	cs.loading = false

	if err != nil {
		cs.logger.Error("CartStore.FetchCart - Error fetching cart",
			zap.String("session_id", sessionID), zap.Error(err))
		return errors.Wrap(err, "fetch cart")
	}

	cs.items = normalizeItems(cart.Items)
	cs.products, cs.index = productIndex(cart.Products)
	cs.logger.Debug("CartStore.FetchCart",
		zap.String("session_id", sessionID), zap.Int("items", len(cs.items)))
	return nil
}

// AddToCart, sepete ürün ekler ve sepeti yeniden okur. quantity 1'den küçükse 1 kabul edilir.
func (cs *CartStore) AddToCart(ctx context.Context, productID string, quantity int) error {
	sessionID := cs.SessionID()
	if sessionID == "" {
		return nil
	}
	if quantity < 1 {
		quantity = 1
	}

	if err := cs.api.AddToCart(ctx, sessionID, productID, quantity); err != nil {
		cs.logger.Error("CartStore.AddToCart - Error adding to cart",
			zap.String("product_id", productID), zap.Int("quantity", quantity), zap.Error(err))
		return errors.Wrap(err, "add to cart")
	}
	return cs.FetchCart(ctx)
}

// UpdateQuantity, ürün miktarını değiştirir. quantity <= 0 ürünü sepetten çıkarır.
func (cs *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return cs.RemoveFromCart(ctx, productID)
	}

	sessionID := cs.SessionID()
	if sessionID == "" {
		return nil
	}

	if err := cs.api.UpdateCartItem(ctx, sessionID, productID, quantity); err != nil {
		cs.logger.Error("CartStore.UpdateQuantity - Error updating cart",
			zap.String("product_id", productID), zap.Int("quantity", quantity), zap.Error(err))
		return errors.Wrap(err, "update cart item")
	}
	return cs.FetchCart(ctx)
}

// RemoveFromCart, sepetten ürün kaldırır
func (cs *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	sessionID := cs.SessionID()
	if sessionID == "" {
		return nil
	}

	if err := cs.api.RemoveFromCart(ctx, sessionID, productID); err != nil {
		cs.logger.Error("CartStore.RemoveFromCart - Error removing from cart",
			zap.String("product_id", productID), zap.Error(err))
		return errors.Wrap(err, "remove from cart")
	}
	return cs.FetchCart(ctx)
}

// ClearCart, sepeti temizler. Sunucu durumu bilindiği için yeniden okuma yapılmaz.
func (cs *CartStore) ClearCart(ctx context.Context) error {
	sessionID := cs.SessionID()
	if sessionID == "" {
		return nil
	}

	if err := cs.api.ClearCart(ctx, sessionID); err != nil {
		cs.logger.Error("CartStore.ClearCart - Error clearing cart", zap.Error(err))
		return errors.Wrap(err, "clear cart")
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.seq++
	cs.loading = false
	cs.items = []models.CartItem{}
	cs.products = []models.Product{}
	cs.index = map[string]int{}
	return nil
}

// TotalItems, sepetteki toplam ürün adedini döndürür
func (cs *CartStore) TotalItems() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	total := 0
	for _, item := range cs.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice, fiyat × miktar toplamıdır. Ürün kaydı bulunamayan kalemler 0 katkı yapar.
func (cs *CartStore) TotalPrice() decimal.Decimal {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	total := decimal.Zero
	for _, item := range cs.items {
		product, ok := cs.productLocked(item.ProductID)
		if !ok {
			continue
		}
		total = total.Add(Money(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Summary, sepet toplamından teslimat ücreti ve genel toplamı hesaplar.
func (cs *CartStore) Summary() Summary {
	return Summarize(cs.TotalPrice())
}

// ProductFor, kalemin ürün kaydını döndürür; kayıt yoksa ok false'tur.
func (cs *CartStore) ProductFor(productID string) (models.Product, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.productLocked(productID)
}

func (cs *CartStore) productLocked(productID string) (models.Product, bool) {
	i, ok := cs.index[productID]
	if !ok {
		return models.Product{}, false
	}
	return cs.products[i], true
}

// QuantityOf, ürünün sepetteki miktarını döndürür; sepette değilse 0.
func (cs *CartStore) QuantityOf(productID string) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, item := range cs.items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// DecrementWillRemove, bir azaltmanın kalemi sileceğini söyler
// (bu durumda eksi yerine çöp kutusu gösterilir).
func (cs *CartStore) DecrementWillRemove(productID string) bool {
	return cs.QuantityOf(productID) == 1
}

// Items, sepet kalemlerinin kopyasını döndürür.
func (cs *CartStore) Items() []models.CartItem {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return slices.Clone(cs.items)
}

// Products, önbellekteki ürün kayıtlarının kopyasını döndürür.
func (cs *CartStore) Products() []models.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return slices.Clone(cs.products)
}

// Loading, bir okuma sürüyorsa true döner.
func (cs *CartStore) Loading() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.loading
}

// SessionID, çözülmüş oturum kimliğini döndürür; InitSession öncesinde boştur.
func (cs *CartStore) SessionID() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.sessionID
}

// normalizeItems, her ürün için tek kalem bırakır ve miktarı pozitif olmayanları atar.
func normalizeItems(in []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, item := range in {
		if item.Quantity <= 0 {
			continue
		}
		if i, ok := pos[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		pos[item.ProductID] = len(out)
		out = append(out, item)
	}
	return out
}
