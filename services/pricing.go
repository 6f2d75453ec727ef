package services

import (
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceLine is one priced cart line: the dish price read at checkout time.
type PriceLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Amounts struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Final       decimal.Decimal `json:"final"`
	// PromotionApplied is false whenever the code was rejected.
	PromotionApplied bool `json:"promotionApplied"`
}

// ComputeOrderAmounts prices the cart. An unusable promotion code gives a
// zero discount, never an error.
func ComputeOrderAmounts(lines []PriceLine, rest *entity.Restaurant, code *entity.PromotionCode, now time.Time) Amounts {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	fee := decimal.Zero
	if rest != nil && rest.DeliveryFee.IsPositive() {
		fee = rest.DeliveryFee
	}

	a := Amounts{Subtotal: subtotal, DeliveryFee: fee, Discount: decimal.Zero}
	if code != nil && PromotionApplies(code, rest, now) {
		a.Discount = discountFor(code.Promotion, subtotal, fee)
		a.PromotionApplied = true
	}

	a.Final = subtotal.Add(fee).Sub(a.Discount)
	if a.Final.IsNegative() {
		a.Final = decimal.Zero
	}
	return a
}

// PromotionApplies reports whether code may be redeemed for an order at
// rest right now.
func PromotionApplies(code *entity.PromotionCode, rest *entity.Restaurant, now time.Time) bool {
	if code == nil || !code.IsActive {
		return false
	}
	if code.MaxUses != nil && code.UsedCount >= *code.MaxUses {
		return false
	}
	p := code.Promotion
	if !p.IsActive || now.Before(p.StartDate) || now.After(p.EndDate) {
		return false
	}
	if p.RestaurantID != nil && (rest == nil || *p.RestaurantID != rest.ID) {
		return false
	}
	return true
}

// discount is clamped to [0, subtotal+fee]
func discountFor(p entity.Promotion, subtotal, fee decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch p.DiscountType {
	case entity.DiscountPercent:
		// ปัดเป็นสตางค์ (half away from zero) ให้ตรงกับคอลัมน์ decimal(12,2)
		d = subtotal.Mul(p.DiscountValue).Div(hundred).Round(2)
	case entity.DiscountFixed:
		d = p.DiscountValue
	case entity.DiscountDeliveryFree:
		d = fee
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	if ceiling := subtotal.Add(fee); d.GreaterThan(ceiling) {
		return ceiling
	}
	return d
}

// CheckMinimumOrder rejects a subtotal below the restaurant's minimum.
func CheckMinimumOrder(subtotal decimal.Decimal, rest *entity.Restaurant) error {
	if rest == nil || !rest.MinOrderAmount.IsPositive() {
		return nil
	}
	if subtotal.LessThan(rest.MinOrderAmount) {
		return apperr.ValidationFields("order is below the restaurant minimum", map[string]string{
			"subtotal": "must be at least " + rest.MinOrderAmount.StringFixed(2),
		})
	}
	return nil
}
