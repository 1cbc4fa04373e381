package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/database"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// DBInterface, veritabanı işlemlerini tanımlar.
type DBInterface interface {
	GetAllCategories() []models.Category
	GetCategoryByID(id string) (*models.Category, error)
	GetAllBanners() []models.Banner
	GetProducts(q models.ProductQuery) []models.Product
	GetProductByID(id string) (*models.Product, error)
	// Cart methods
	GetCartBySessionID(sessionID string) models.Cart
	AddCartItem(sessionID, productID string, quantity int) error
	UpdateCartItem(sessionID, productID string, quantity int) error
	DeleteCartItem(sessionID, productID string) error
	ClearCart(sessionID string) error
	// Favorite methods
	GetFavoritesBySessionID(sessionID string) models.Favorites
	ToggleFavorite(sessionID, productID string) (bool, error)
	// Order methods
	CreateOrder(req models.OrderCreate) (*models.Order, error)
	GetOrdersBySessionID(sessionID string) []models.Order
	GetOrderByID(sessionID, orderID string) (*models.Order, error)
}

// Handler, HTTP isteklerini yönetir.
type Handler struct {
	db     DBInterface
	logger *zap.Logger
}

// NewHandler, yeni bir Handler örneği oluşturur.
func NewHandler(db DBInterface, logger *zap.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// RegisterRoutes, mağaza uç noktalarını verilen gruba bağlar (genellikle /api).
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)

	r.GET("/categories", h.GetCategories)
	r.GET("/categories/:category_id", h.GetCategory)
	r.GET("/products", h.GetProducts)
	r.GET("/products/:product_id", h.GetProduct)
	r.GET("/banners", h.GetBanners)

	r.GET("/cart/:session_id", h.GetCart)
	r.POST("/cart/:session_id/add", h.AddToCart)
	r.PUT("/cart/:session_id/update", h.UpdateCartItem)
	r.DELETE("/cart/:session_id/remove/:product_id", h.RemoveFromCart)
	r.DELETE("/cart/:session_id/clear", h.ClearCart)

	r.GET("/favorites/:session_id", h.GetFavorites)
	r.POST("/favorites/:session_id/toggle/:product_id", h.ToggleFavorite)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:session_id", h.GetOrders)
	r.GET("/orders/:session_id/:order_id", h.GetOrder)
}

// Root, servis durumunu döndürür.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sanal Market API", "status": "running"})
}

// fail, hatayı HTTP durumuna çevirir. Gövde her zaman {"detail": "..."} biçimindedir.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrCartEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrCategoryNotFound),
		errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrCartNotFound),
		errors.Is(err, database.ErrItemNotInCart),
		errors.Is(err, database.ErrOrderNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(status, gin.H{"detail": "Internal Server Error"})
		return
	}
	c.JSON(status, gin.H{"detail": errors.Cause(err).Error()})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.Debug("Invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}

// --- Catalog ---

func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.db.GetAllCategories())
}

func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.db.GetCategoryByID(c.Param("category_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// productsQuery, GET /products sorgu parametreleridir.
type productsQuery struct {
	CategoryID string `form:"category_id"`
	Search     string `form:"search"`
	Featured   bool   `form:"featured"`
	OnSale     bool   `form:"on_sale"`
	Limit      int    `form:"limit" binding:"omitempty,min=0,max=100"`
	Skip       int    `form:"skip" binding:"omitempty,min=0"`
}

func (h *Handler) GetProducts(c *gin.Context) {
	var q productsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.db.GetProducts(models.ProductQuery{
		CategoryID: q.CategoryID,
		Search:     q.Search,
		Featured:   q.Featured,
		OnSale:     q.OnSale,
		Limit:      q.Limit,
		Skip:       q.Skip,
	}))
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.db.GetProductByID(c.Param("product_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) GetBanners(c *gin.Context) {
	c.JSON(http.StatusOK, h.db.GetAllBanners())
}

// --- Cart ---

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.db.GetCartBySessionID(c.Param("session_id")))
}

// AddToCart, ürünü sepete ekler. quantity verilmezse 1 kabul edilir.
func (h *Handler) AddToCart(c *gin.Context) {
	sessionID := c.Param("session_id")

	req := struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"min=1"`
	}{Quantity: 1}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.db.AddCartItem(sessionID, req.ProductID, req.Quantity); err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("AddToCart",
		zap.String("session_id", sessionID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": h.db.GetCartBySessionID(sessionID)})
}

// UpdateCartItem, kalemin miktarını değiştirir; quantity <= 0 kalemi siler.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.db.UpdateCartItem(sessionID, req.ProductID, *req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": h.db.GetCartBySessionID(sessionID)})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	if err := h.db.DeleteCartItem(c.Param("session_id"), c.Param("product_id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.db.ClearCart(c.Param("session_id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// --- Favorites ---

func (h *Handler) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, h.db.GetFavoritesBySessionID(c.Param("session_id")))
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	isFavorite, err := h.db.ToggleFavorite(c.Param("session_id"), c.Param("product_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FavoriteToggle{Message: "Favorite toggled", IsFavorite: isFavorite})
}

// --- Orders ---

// CreateOrder, oturumun sepetinden sipariş oluşturur. Boş sepet 400 döner.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "session_id is required"})
		return
	}

	order, err := h.db.CreateOrder(req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("session_id", order.SessionID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)))
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.db.GetOrdersBySessionID(c.Param("session_id")))
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.db.GetOrderByID(c.Param("session_id"), c.Param("order_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
