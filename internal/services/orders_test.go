package services

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/api"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

func TestOrderHistory(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend()
	fb.orders = []models.Order{
		{ID: "o2", SessionID: "session_test"},
		{ID: "o-other", SessionID: "session_other"},
		{ID: "o1", SessionID: "session_test"},
	}
	oh := NewOrderHistory(fb, &fixedIdentity{id: "session_test"}, zaptest.NewLogger(t))

	orders, err := oh.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o2" || orders[1].ID != "o1" {
		t.Errorf("List = %+v", orders)
	}

	order, err := oh.Get(ctx, "o1")
	if err != nil || order.ID != "o1" {
		t.Fatalf("Get = %+v, %v", order, err)
	}
	if _, err := oh.Get(ctx, "o-other"); !api.IsNotFound(err) {
		t.Errorf("Get other session's order err = %v, want not found", err)
	}
}

func TestOrderHistory_EmptyList(t *testing.T) {
	oh := NewOrderHistory(newFakeBackend(), &fixedIdentity{id: "session_test"}, zaptest.NewLogger(t))
	orders, err := oh.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("List = %#v, want empty slice", orders)
	}
}
