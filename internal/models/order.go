package models

import "strings"

// PaymentCashOnDelivery, tek desteklenen ödeme yöntemidir (kapıda ödeme).
const PaymentCashOnDelivery = "cash_on_delivery"

// Sipariş durumları
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusOnTheWay  = "on_the_way"
	StatusDelivered = "delivered"
)

var statusLabels = map[string]string{
	StatusPending:   "Beklemede",
	StatusConfirmed: "Onaylandı",
	StatusPreparing: "Hazırlanıyor",
	StatusOnTheWay:  "Yolda",
	StatusDelivered: "Teslim Edildi",
}

// StatusSteps, sipariş takibinde gösterilen adımlardır (pending hariç).
var StatusSteps = []string{StatusConfirmed, StatusPreparing, StatusOnTheWay, StatusDelivered}

// DeliveryAddress, teslimat adresini temsil eder.
type DeliveryAddress struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Notes    string `json:"notes,omitempty"`
}

// OrderCreate, POST /orders gövdesidir. Kalemler sunucu tarafındaki sepetten okunur.
type OrderCreate struct {
	SessionID        string          `json:"session_id"`
	DeliveryAddress  DeliveryAddress `json:"delivery_address"`
	DeliveryDate     string          `json:"delivery_date"`
	DeliveryTimeSlot string          `json:"delivery_time_slot"`
	PaymentMethod    string          `json:"payment_method"`
}

// OrderItem, sipariş anında dondurulmuş ürün satırıdır.
type OrderItem struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductNameTR string  `json:"product_name_tr"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Total         float64 `json:"total"`
	ImageURL      string  `json:"image_url"`
}

// Order, siparişi temsil eder
type Order struct {
	ID               string          `json:"id"`
	SessionID        string          `json:"session_id"`
	Items            []OrderItem     `json:"items"`
	Subtotal         float64         `json:"subtotal"`
	DeliveryFee      float64         `json:"delivery_fee"`
	Total            float64         `json:"total"`
	DeliveryAddress  DeliveryAddress `json:"delivery_address"`
	DeliveryDate     string          `json:"delivery_date"`
	DeliveryTimeSlot string          `json:"delivery_time_slot"`
	PaymentMethod    string          `json:"payment_method"`
	Status           string          `json:"status"`
	CreatedAt        Timestamp       `json:"created_at"`
}

// Number, kullanıcıya gösterilen kısa sipariş numarasıdır (#ABC123).
func (o Order) Number() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return "#" + strings.ToUpper(id)
}

// StatusLabel, durumun Türkçe karşılığını döndürür.
func (o Order) StatusLabel() string {
	return StatusLabel(o.Status)
}

// StatusLabel, durumun Türkçe etiketini döndürür; bilinmeyen durumda ham değeri.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// StatusStep, siparişin takip adımlarındaki konumudur; bilinmeyen durumlar 0 kabul edilir.
func (o Order) StatusStep() int {
	for i, s := range StatusSteps {
		if s == o.Status {
			return i
		}
	}
	return 0
}
