package services

import "github.com/shopspring/decimal"

var (
	// FreeDeliveryThreshold, bu tutar ve üzerindeki siparişlerde teslimat ücretsizdir (TL).
	FreeDeliveryThreshold = decimal.NewFromInt(300)
	// StandardDeliveryFee, eşiğin altındaki siparişlere uygulanan teslimat ücretidir (TL).
	StandardDeliveryFee = decimal.RequireFromString("14.90")
)

// Money, float64 fiyatı iki basamaklı decimal değere çevirir.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// DeliveryFee, ara toplama göre teslimat ücretini döndürür.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return StandardDeliveryFee
}

// OrderTotal, ara toplam ile teslimat ücretinin toplamıdır.
func OrderTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(DeliveryFee(subtotal))
}

// RemainingForFreeDelivery, ücretsiz teslimata kalan tutardır; eşik aşıldıysa sıfır.
func RemainingForFreeDelivery(subtotal decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, FreeDeliveryThreshold.Sub(subtotal))
}

// Summary, sepet ve ödeme ekranlarında gösterilen tutarlardır.
type Summary struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Summarize, verilen ara toplam için Summary oluşturur.
func Summarize(subtotal decimal.Decimal) Summary {
	fee := DeliveryFee(subtotal)
	return Summary{Subtotal: subtotal, DeliveryFee: fee, Total: subtotal.Add(fee)}
}
