package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter, /api altında mağaza uç noktalarını sunan ve CORS'a açık handler'ı kurar.
func NewRouter(db DBInterface, logger *zap.Logger) http.Handler {
	h := NewHandler(db, logger)

	// Engine'i manuel olarak oluştur (middleware'leri kontrol etmek için)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))

	h.RegisterRoutes(r.Group("/api"))

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", RequestIDHeader},
	}).Handler(r)
}
