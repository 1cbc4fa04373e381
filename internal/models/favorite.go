package models

// Favorites, GET /favorites/{session_id} yanıtını temsil eder.
type Favorites struct {
	SessionID  string    `json:"session_id"`
	ProductIDs []string  `json:"product_ids"`
	Products   []Product `json:"products"`
}

// FavoriteToggle, POST /favorites/{session_id}/toggle/{product_id} yanıtıdır.
type FavoriteToggle struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"is_favorite"`
}
