package services

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// FavoritesStore, oturumun favori ürün kimliklerini ve ürün kayıtlarını tutar.
// Sepetten farklı olarak değiştirme iyimserdir: yerel küme istek dönmeden güncellenir.
type FavoritesStore struct {
	api      FavoritesAPI
	identity SessionResolver
	logger   *zap.Logger

	mu         sync.RWMutex
	sessionID  string
	productIDs []string
	members    map[string]struct{}
	products   []models.Product
	loading    bool
	seq        uint64
}

// NewFavoritesStore, yeni bir FavoritesStore örneği oluşturur
func NewFavoritesStore(api FavoritesAPI, identity SessionResolver, logger *zap.Logger) *FavoritesStore {
	return &FavoritesStore{
		api:        api,
		identity:   identity,
		logger:     logger,
		productIDs: []string{},
		members:    map[string]struct{}{},
		products:   []models.Product{},
	}
}

// InitSession, oturum kimliğini çözer ve favorileri getirir.
func (fs *FavoritesStore) InitSession(ctx context.Context) error {
	sessionID, err := fs.identity.Ensure(ctx)
	if err != nil {
		fs.logger.Error("FavoritesStore.InitSession - session unavailable", zap.Error(err))
		return err
	}

	fs.mu.Lock()
	fs.sessionID = sessionID
	fs.mu.Unlock()

	return fs.FetchFavorites(ctx)
}

// FetchFavorites, favorileri sunucudan okur ve yerel durumu toptan değiştirir.
func (fs *FavoritesStore) FetchFavorites(ctx context.Context) error {
	fs.mu.Lock()
	sessionID := fs.sessionID
	if sessionID == "" {
		fs.mu.Unlock()
		return nil
	}
	fs.seq++
	seq := fs.seq
	fs.loading = true
	fs.mu.Unlock()

	favorites, err := fs.api.GetFavorites(ctx, sessionID)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if seq != fs.seq {
		fs.logger.Debug("FavoritesStore.FetchFavorites - discarding stale response",
			zap.Uint64("seq", seq), zap.Uint64("latest", fs.seq))
		return errors.Wrap(err, "fetch favorites")
	}
	fs.loading = false

	if err != nil {
		fs.logger.Error("FavoritesStore.FetchFavorites - Error fetching favorites",
			zap.String("session_id", sessionID), zap.Error(err))
		return errors.Wrap(err, "fetch favorites")
	}

	fs.setIDsLocked(favorites.ProductIDs)
	fs.products, _ = productIndex(favorites.Products)
	return nil
}

// ToggleFavorite, ürünü favorilere ekler ya da çıkarır. Yerel küme istekten önce
// güncellenir; istek başarısız olursa değişiklik öncesi kopya aynen geri yüklenir.
func (fs *FavoritesStore) ToggleFavorite(ctx context.Context, productID string) error {
	fs.mu.Lock()
	sessionID := fs.sessionID
	if sessionID == "" {
		fs.mu.Unlock()
		return nil
	}

	snapshot := slices.Clone(fs.productIDs)
	if _, ok := fs.members[productID]; ok {
		fs.setIDsLocked(slices.DeleteFunc(slices.Clone(fs.productIDs), func(id string) bool { return id == productID }))
	} else {
		fs.setIDsLocked(append(slices.Clone(fs.productIDs), productID))
	}
	// eski okumalar iyimser durumu ezmemeli
	fs.seq++
	fs.loading = false
	fs.mu.Unlock()

	if _, err := fs.api.ToggleFavorite(ctx, sessionID, productID); err != nil {
		fs.mu.Lock()
		fs.setIDsLocked(snapshot)
		fs.seq++
		fs.loading = false
		fs.mu.Unlock()

		fs.logger.Error("FavoritesStore.ToggleFavorite - Error toggling favorite, reverted",
			zap.String("product_id", productID), zap.Error(err))
		return errors.Wrap(err, "toggle favorite")
	}
	return fs.FetchFavorites(ctx)
}

// IsFavorite, ürünün favorilerde olup olmadığını söyler.
func (fs *FavoritesStore) IsFavorite(productID string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.members[productID]
	return ok
}

// ProductIDs, favori kimliklerini sunucu sırasıyla döndürür.
func (fs *FavoritesStore) ProductIDs() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return slices.Clone(fs.productIDs)
}

// Products, önbellekteki ürün kayıtlarının kopyasını döndürür.
func (fs *FavoritesStore) Products() []models.Product {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return slices.Clone(fs.products)
}

// Count, sekme rozetinde gösterilen favori sayısıdır.
func (fs *FavoritesStore) Count() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.productIDs)
}

// Loading, bir okuma sürüyorsa true döner.
func (fs *FavoritesStore) Loading() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.loading
}

// SessionID, çözülmüş oturum kimliğini döndürür.
func (fs *FavoritesStore) SessionID() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.sessionID
}

// setIDsLocked, kimlik listesini değiştirir; sırayı koruyarak tekrarları atar.
func (fs *FavoritesStore) setIDsLocked(ids []string) {
	list := make([]string, 0, len(ids))
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := members[id]; dup {
			continue
		}
		members[id] = struct{}{}
		list = append(list, id)
	}
	fs.productIDs = list
	fs.members = members
}
