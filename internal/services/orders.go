package services

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// OrderHistory, oturumun geçmiş siparişlerini okur.
type OrderHistory struct {
	api      OrderAPI
	identity SessionResolver
	logger   *zap.Logger
}

// NewOrderHistory, yeni bir OrderHistory örneği oluşturur
func NewOrderHistory(api OrderAPI, identity SessionResolver, logger *zap.Logger) *OrderHistory {
	return &OrderHistory{api: api, identity: identity, logger: logger}
}

// List, siparişleri sunucunun sırasıyla (en yeni önce) döndürür.
func (oh *OrderHistory) List(ctx context.Context) ([]models.Order, error) {
	sessionID, err := oh.identity.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := oh.api.Orders(ctx, sessionID)
	if err != nil {
		oh.logger.Error("OrderHistory.List - Error fetching orders", zap.Error(err))
		return nil, errors.Wrap(err, "list orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Get, tek bir siparişi oturum kapsamında getirir.
func (oh *OrderHistory) Get(ctx context.Context, orderID string) (*models.Order, error) {
	sessionID, err := oh.identity.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	order, err := oh.api.Order(ctx, sessionID, orderID)
	if err != nil {
		oh.logger.Error("OrderHistory.Get - Error fetching order",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, errors.Wrapf(err, "get order %s", orderID)
	}
	return order, nil
}
