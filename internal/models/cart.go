package models

// Cart, GET /cart/{session_id} yanıtını temsil eder. Products, kalemleri
// çizmek için gereken ürün kayıtlarıdır.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Products  []Product  `json:"products"`
}

// CartItem, sepet öğesini temsil eder
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItemRequest, sepete ekleme ve güncelleme isteklerinin gövdesidir.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
