package models

// Category, ürün kategorisini temsil eder.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NameTR       string `json:"name_tr"`
	Icon         string `json:"icon"`
	ImageURL     string `json:"image_url"`
	Color        string `json:"color"`
	ProductCount int    `json:"product_count"`
}

// Banner bağlantı türleri
const (
	BannerLinkCategory = "category"
	BannerLinkProduct  = "product"
	BannerLinkPromo    = "promo"
)

// Banner, ana sayfa kampanya görselini temsil eder.
type Banner struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle"`
	ImageURL        string  `json:"image_url"`
	BackgroundColor string  `json:"background_color"`
	LinkType        string  `json:"link_type"`
	LinkID          *string `json:"link_id,omitempty"`
}
