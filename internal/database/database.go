package database

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/services"
)

// Hata mesajları API'de "detail" alanı olarak aynen döner.
var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrProductNotFound  = errors.New("Product not found")
	ErrCartNotFound     = errors.New("Cart not found")
	ErrItemNotInCart    = errors.New("Item not in cart")
	ErrOrderNotFound    = errors.New("Order not found")
	ErrCartEmpty        = errors.New("Cart is empty")
)

// Ürün listeleme sınırları
const (
	DefaultProductLimit = 50
	MaxProductLimit     = 100
)

//go:embed seed.json
var seedJSON []byte

// dbData, JSON dosyasındaki tüm verileri temsil eder.
type dbData struct {
	Categories []models.Category           `json:"categories"`
	Products   []models.Product            `json:"products"`
	Banners    []models.Banner             `json:"banners"`
	Carts      map[string][]models.CartItem `json:"carts"`
	Favorites  map[string][]string         `json:"favorites"`
	Orders     []models.Order              `json:"orders"`
}

// JSONDatabase, mağaza verilerini bellekte tutar; filePath verilmişse her
// değişiklikte diske yazar.
type JSONDatabase struct {
	mu       sync.RWMutex
	data     dbData
	filePath string
	now      func() time.Time
	logger   *zap.Logger
}

// NewDatabase, yeni bir JSONDatabase örneği oluşturur ve verileri yükler.
// filePath boşsa veriler yalnızca bellekte tutulur.
func NewDatabase(filePath string, logger *zap.Logger) (*JSONDatabase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db := &JSONDatabase{
		filePath: filePath,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
	if err := db.loadData(); err != nil {
		return nil, errors.Wrapf(err, "load %s", filePath)
	}
	return db, nil
}

func (db *JSONDatabase) seed() error {
	var seed dbData
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		return errors.Wrap(err, "seed data")
	}
	db.data = seed
	db.ensureMaps()
	db.data.Orders = []models.Order{}
	return nil
}

func (db *JSONDatabase) ensureMaps() {
	if db.data.Carts == nil {
		db.data.Carts = map[string][]models.CartItem{}
	}
	if db.data.Favorites == nil {
		db.data.Favorites = map[string][]string{}
	}
	if db.data.Orders == nil {
		db.data.Orders = []models.Order{}
	}
}

func (db *JSONDatabase) loadData() error {
	if db.filePath == "" {
		return db.seed()
	}

	fileData, err := os.ReadFile(db.filePath)
	if os.IsNotExist(err) {
		db.logger.Info("JSONDatabase - veri dosyası bulunamadı, örnek veriler yükleniyor",
			zap.String("path", db.filePath))
		if err := db.seed(); err != nil {
			return err
		}
		return db.saveData()
	}
	if err != nil {
		return err
	}
	// Dosya boşsa hata vermemesi için kontrol
	if len(fileData) == 0 {
		return db.seed()
	}

	if err := json.Unmarshal(fileData, &db.data); err != nil {
		return err
	}
	db.ensureMaps()
	return nil
}

func (db *JSONDatabase) saveData() error {
	if db.filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(db.filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(db.filePath, data, 0644)
}

// --- Catalog ---

// GetAllCategories, tüm kategorileri döndürür.
func (db *JSONDatabase) GetAllCategories() []models.Category {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.data.Categories)
}

// GetCategoryByID, belirli bir ID'ye sahip kategoriyi döndürür.
func (db *JSONDatabase) GetCategoryByID(id string) (*models.Category, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, c := range db.data.Categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

// GetAllBanners, kampanya görsellerini döndürür.
func (db *JSONDatabase) GetAllBanners() []models.Banner {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.data.Banners)
}

// GetProducts, filtrelere uyan ürünleri katalog sırasıyla döndürür. Arama,
// dört ad/açıklama alanında büyük-küçük harf duyarsız alt dize eşleşmesidir.
func (db *JSONDatabase) GetProducts(q models.ProductQuery) []models.Product {
	db.mu.RLock()
	defer db.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	limit = min(limit, MaxProductLimit)
	skip := max(q.Skip, 0)
	term := strings.ToLower(q.Search)

	products := []models.Product{}
	for _, p := range db.data.Products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Featured && !p.IsFeatured {
			continue
		}
		if q.OnSale && !p.IsOnSale {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		products = append(products, p)
		if len(products) == limit {
			break
		}
	}
	return products
}

func matches(p models.Product, term string) bool {
	for _, field := range []string{p.Name, p.NameTR, p.Description, p.DescriptionTR} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// GetProductByID, belirli bir ID'ye sahip ürünü döndürür.
func (db *JSONDatabase) GetProductByID(id string) (*models.Product, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	p, ok := db.productLocked(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (db *JSONDatabase) productLocked(id string) (models.Product, bool) {
	for _, p := range db.data.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// --- Cart ---

// GetCartBySessionID, sepeti ve kalemlerin ürün kayıtlarını döndürür. Sepet yoksa boş döner.
func (db *JSONDatabase) GetCartBySessionID(sessionID string) models.Cart {
	db.mu.RLock()
	defer db.mu.RUnlock()

	cart := models.Cart{
		SessionID: sessionID,
		Items:     slices.Clone(db.data.Carts[sessionID]),
		Products:  []models.Product{},
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	for _, item := range cart.Items {
		if p, ok := db.productLocked(item.ProductID); ok {
			cart.Products = append(cart.Products, p)
		}
	}
	return cart
}

// AddCartItem, ürünü sepete ekler; ürün zaten sepetteyse miktarı artırır.
func (db *JSONDatabase) AddCartItem(sessionID, productID string, quantity int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.productLocked(productID); !ok {
		return ErrProductNotFound
	}

	items := db.data.Carts[sessionID]
	i := slices.IndexFunc(items, func(item models.CartItem) bool { return item.ProductID == productID })
	switch {
	case i >= 0:
		items[i].Quantity += quantity
	case quantity > 0:
		items = append(items, models.CartItem{ProductID: productID, Quantity: quantity})
	}
	// Sepette miktarı sıfır ya da negatif kalem tutulmaz
	if i >= 0 && items[i].Quantity <= 0 {
		items = removeItem(items, productID)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	db.data.Carts[sessionID] = items
	return db.saveData()
}

// UpdateCartItem, kalemin miktarını değiştirir; quantity <= 0 kalemi siler.
func (db *JSONDatabase) UpdateCartItem(sessionID, productID string, quantity int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	items, ok := db.data.Carts[sessionID]
	if !ok {
		return ErrCartNotFound
	}

	if quantity <= 0 {
		db.data.Carts[sessionID] = removeItem(items, productID)
		return db.saveData()
	}

	i := slices.IndexFunc(items, func(item models.CartItem) bool { return item.ProductID == productID })
	if i < 0 {
		return ErrItemNotInCart
	}
	items[i].Quantity = quantity
	return db.saveData()
}

// DeleteCartItem, ürünü sepetten kaldırır.
func (db *JSONDatabase) DeleteCartItem(sessionID, productID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	items, ok := db.data.Carts[sessionID]
	if !ok {
		return ErrCartNotFound
	}
	db.data.Carts[sessionID] = removeItem(items, productID)
	return db.saveData()
}

// ClearCart, sepeti boşaltır. Sepet hiç yoksa da başarılıdır.
func (db *JSONDatabase) ClearCart(sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.data.Carts[sessionID]; !ok {
		return nil
	}
	db.data.Carts[sessionID] = []models.CartItem{}
	return db.saveData()
}

func removeItem(items []models.CartItem, productID string) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// --- Favorites ---

// GetFavoritesBySessionID, favori kimliklerini ve ürün kayıtlarını döndürür.
func (db *JSONDatabase) GetFavoritesBySessionID(sessionID string) models.Favorites {
	db.mu.RLock()
	defer db.mu.RUnlock()

	fav := models.Favorites{
		SessionID:  sessionID,
		ProductIDs: slices.Clone(db.data.Favorites[sessionID]),
		Products:   []models.Product{},
	}
	if fav.ProductIDs == nil {
		fav.ProductIDs = []string{}
	}
	for _, id := range fav.ProductIDs {
		if p, ok := db.productLocked(id); ok {
			fav.Products = append(fav.Products, p)
		}
	}
	return fav
}

// ToggleFavorite, ürünü favorilere ekler ya da çıkarır ve yeni durumu döndürür.
func (db *JSONDatabase) ToggleFavorite(sessionID, productID string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.productLocked(productID); !ok {
		return false, ErrProductNotFound
	}

	ids := db.data.Favorites[sessionID]
	isFavorite := !slices.Contains(ids, productID)
	if isFavorite {
		ids = append(ids, productID)
	} else {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == productID })
	}
	db.data.Favorites[sessionID] = ids
	return isFavorite, db.saveData()
}

// --- Orders ---

// CreateOrder, sunucudaki sepetten sipariş oluşturur ve sepeti boşaltır.
// Kalemler sipariş anındaki fiyatlarla dondurulur.
func (db *JSONDatabase) CreateOrder(req models.OrderCreate) (*models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	items := db.data.Carts[req.SessionID]
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := decimal.Zero
	orderItems := []models.OrderItem{}
	for _, item := range items {
		product, ok := db.productLocked(item.ProductID)
		if !ok {
			continue
		}
		lineTotal := services.Money(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductNameTR: product.NameTR,
			Price:         product.Price,
			Quantity:      item.Quantity,
			Total:         lineTotal.InexactFloat64(),
			ImageURL:      product.ImageURL,
		})
	}

	summary := services.Summarize(subtotal)
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCashOnDelivery
	}

	order := models.Order{
		ID:               uuid.NewString(),
		SessionID:        req.SessionID,
		Items:            orderItems,
		Subtotal:         summary.Subtotal.InexactFloat64(),
		DeliveryFee:      summary.DeliveryFee.InexactFloat64(),
		Total:            summary.Total.InexactFloat64(),
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryDate:     req.DeliveryDate,
		DeliveryTimeSlot: req.DeliveryTimeSlot,
		PaymentMethod:    paymentMethod,
		Status:           models.StatusConfirmed,
		CreatedAt:        models.Timestamp{Time: db.now()},
	}

	db.data.Orders = append(db.data.Orders, order)
	db.data.Carts[req.SessionID] = []models.CartItem{}
	if err := db.saveData(); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersBySessionID, session ID'ye göre siparişleri getirir (en yeni önce).
func (db *JSONDatabase) GetOrdersBySessionID(sessionID string) []models.Order {
	db.mu.RLock()
	defer db.mu.RUnlock()

	sessionOrders := []models.Order{}
	for _, order := range db.data.Orders {
		if order.SessionID == sessionID {
			sessionOrders = append(sessionOrders, order)
		}
	}

	// Tarihe göre sırala (en yeni önce)
	sort.SliceStable(sessionOrders, func(i, j int) bool {
		return sessionOrders[i].CreatedAt.After(sessionOrders[j].CreatedAt.Time)
	})
	return sessionOrders
}

// GetOrderByID, oturuma ait siparişi getirir; başka oturumun siparişi bulunamaz.
func (db *JSONDatabase) GetOrderByID(sessionID, orderID string) (*models.Order, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, order := range db.data.Orders {
		if order.ID == orderID && order.SessionID == sessionID {
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}
