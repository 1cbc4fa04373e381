package models

// Product, sunucudan gelen ürün kaydını temsil eder. İstemci bu kaydı asla
// değiştirmez; sepet ve favori yanıtlarıyla birlikte toptan yenilenir.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	NameTR          string   `json:"name_tr"`
	Description     string   `json:"description,omitempty"`
	DescriptionTR   string   `json:"description_tr,omitempty"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	CategoryID      string   `json:"category_id,omitempty"`
	ImageURL        string   `json:"image_url"`
	Unit            string   `json:"unit"` // kg, adet, litre
	Stock           int      `json:"stock,omitempty"`
	IsFeatured      bool     `json:"is_featured,omitempty"`
	IsOnSale        bool     `json:"is_on_sale,omitempty"`
	DiscountPercent *int     `json:"discount_percent,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	ReviewCount     int      `json:"review_count,omitempty"`
}

// DisplayName, ürünün Türkçe adını, yoksa varsayılan adını döndürür
func (p Product) DisplayName() string {
	if p.NameTR != "" {
		return p.NameTR
	}
	return p.Name
}

// ProductQuery, GET /products için filtreleri taşır.
type ProductQuery struct {
	CategoryID string
	Search     string
	Featured   bool
	OnSale     bool
	Limit      int
	Skip       int
}
