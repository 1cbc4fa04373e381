package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
)

// DefaultCity, adres formunda önceden doldurulan ildir.
const DefaultCity = "İstanbul"

// DeliveryDays, seçilebilecek teslimat günü sayısıdır (yarından başlayarak).
const DeliveryDays = 7

// TimeSlots, sabit teslimat saat aralıklarıdır.
var TimeSlots = []string{
	"09:00 - 12:00",
	"12:00 - 15:00",
	"15:00 - 18:00",
	"18:00 - 21:00",
}

var (
	weekdaysTR = [...]string{"Paz", "Pzt", "Sal", "Çar", "Per", "Cum", "Cmt"}
	monthsTR   = [...]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}
)

// ValidationError, ödeme formunda eksik ya da geçersiz bir alanı bildirir.
// Message kullanıcıya aynen gösterilir.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DeliveryDate, seçilebilir bir teslimat günüdür.
type DeliveryDate struct {
	Value string // 2006-01-02
	Label string // 20 Eki Pzt
}

// CheckoutCart, ödeme taslağının sepetten ihtiyaç duyduklarıdır (bkz. CartStore).
type CheckoutCart interface {
	SessionID() string
	TotalItems() int
	TotalPrice() decimal.Decimal
	ClearCart(ctx context.Context) error
}

// CheckoutDraft, ödeme ekranının geçici durumudur: adres, teslimat günü ve saati.
type CheckoutDraft struct {
	Address models.DeliveryAddress

	cart   CheckoutCart
	orders OrderAPI
	logger *zap.Logger

	dates        []DeliveryDate
	selectedDate string
	selectedSlot string
}

// NewCheckoutDraft, now anından sonraki 7 günü teslimat seçenekleri olarak üretir.
func NewCheckoutDraft(cart CheckoutCart, orders OrderAPI, now time.Time, logger *zap.Logger) *CheckoutDraft {
	return &CheckoutDraft{
		Address: models.DeliveryAddress{City: DefaultCity},
		cart:    cart,
		orders:  orders,
		logger:  logger,
		dates:   DeliveryDates(now),
	}
}

// DeliveryDates, now'dan sonraki DeliveryDays takvim gününü döndürür.
func DeliveryDates(now time.Time) []DeliveryDate {
	dates := make([]DeliveryDate, 0, DeliveryDays)
	for i := 1; i <= DeliveryDays; i++ {
		d := now.AddDate(0, 0, i)
		dates = append(dates, DeliveryDate{
			Value: d.Format("2006-01-02"),
			Label: fmt.Sprintf("%d %s %s", d.Day(), monthsTR[d.Month()-1], weekdaysTR[d.Weekday()]),
		})
	}
	return dates
}

// Dates, seçilebilir teslimat günlerini döndürür.
func (d *CheckoutDraft) Dates() []DeliveryDate {
	return slices.Clone(d.dates)
}

// SelectDate, teslimat gününü seçer; listede olmayan değerler reddedilir.
func (d *CheckoutDraft) SelectDate(value string) error {
	for _, date := range d.dates {
		if date.Value == value {
			d.selectedDate = value
			return nil
		}
	}
	return &ValidationError{Field: "delivery_date", Message: "Geçersiz teslimat tarihi"}
}

// SelectTimeSlot, teslimat saatini seçer; sabit listede olmayan değerler reddedilir.
func (d *CheckoutDraft) SelectTimeSlot(slot string) error {
	if !slices.Contains(TimeSlots, slot) {
		return &ValidationError{Field: "delivery_time_slot", Message: "Geçersiz teslimat saati"}
	}
	d.selectedSlot = slot
	return nil
}

// SelectedDate, seçilen teslimat gününü döndürür; seçim yoksa "".
func (d *CheckoutDraft) SelectedDate() string { return d.selectedDate }

// SelectedTimeSlot, seçilen teslimat saatini döndürür; seçim yoksa "".
func (d *CheckoutDraft) SelectedTimeSlot() string { return d.selectedSlot }

// Summary, sepet tutarı üzerinden ara toplam, teslimat ücreti ve toplamı verir.
func (d *CheckoutDraft) Summary() Summary {
	return Summarize(d.cart.TotalPrice())
}

// Validate, zorunlu alanları ekrandaki sırayla kontrol eder ve ilk eksik alanı bildirir.
func (d *CheckoutDraft) Validate() error {
	checks := []struct {
		field   string
		value   string
		message string
	}{
		{"full_name", d.Address.FullName, "Lütfen adınızı girin"},
		{"phone", d.Address.Phone, "Lütfen telefon numaranızı girin"},
		{"address", d.Address.Address, "Lütfen adresinizi girin"},
		{"district", d.Address.District, "Lütfen ilçe girin"},
		{"delivery_date", d.selectedDate, "Lütfen teslimat tarihi seçin"},
		{"delivery_time_slot", d.selectedSlot, "Lütfen teslimat saati seçin"},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &ValidationError{Field: c.field, Message: c.message}
		}
	}
	if d.cart.SessionID() == "" {
		return &ValidationError{Field: "session_id", Message: "Oturum bulunamadı"}
	}
	if d.cart.TotalItems() == 0 {
		return &ValidationError{Field: "cart", Message: "Sepet boş"}
	}
	return nil
}

// OrderRequest, POST /orders gövdesini oluşturur.
func (d *CheckoutDraft) OrderRequest() models.OrderCreate {
	a := d.Address
	return models.OrderCreate{
		SessionID: d.cart.SessionID(),
		DeliveryAddress: models.DeliveryAddress{
			FullName: strings.TrimSpace(a.FullName),
			Phone:    strings.TrimSpace(a.Phone),
			Address:  strings.TrimSpace(a.Address),
			City:     strings.TrimSpace(a.City),
			District: strings.TrimSpace(a.District),
			Notes:    strings.TrimSpace(a.Notes),
		},
		DeliveryDate:     d.selectedDate,
		DeliveryTimeSlot: d.selectedSlot,
		PaymentMethod:    models.PaymentCashOnDelivery,
	}
}

// Submit, formu doğrular, siparişi gönderir ve başarılı olursa sepeti temizler.
// Doğrulama hatasında hiçbir istek yapılmaz.
func (d *CheckoutDraft) Submit(ctx context.Context) (*models.Order, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	req := d.OrderRequest()
	order, err := d.orders.CreateOrder(ctx, req)
	if err != nil {
		d.logger.Error("CheckoutDraft.Submit - Order error",
			zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, errors.Wrap(err, "create order")
	}
	d.logger.Info("CheckoutDraft.Submit - Order created",
		zap.String("order_id", order.ID),
		zap.String("delivery_date", order.DeliveryDate),
		zap.String("delivery_time_slot", order.DeliveryTimeSlot))

	if err := d.cart.ClearCart(ctx); err != nil {
		// sunucu siparişi kabul ederken sepeti zaten boşaltır
		d.logger.Warn("CheckoutDraft.Submit - local cart not cleared", zap.Error(err))
	}
	return order, nil
}
