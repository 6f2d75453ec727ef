package services

import (
	"testing"
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func code(typ entity.DiscountType, value string) *entity.PromotionCode {
	return &entity.PromotionCode{
		Code:     "SAVE",
		IsActive: true,
		Promotion: entity.Promotion{
			DiscountType:  typ,
			DiscountValue: dec(value),
			StartDate:     testNow.Add(-time.Hour),
			EndDate:       testNow.Add(time.Hour),
			IsActive:      true,
		},
	}
}

func restWithFee(fee string) *entity.Restaurant {
	r := &entity.Restaurant{DeliveryFee: dec(fee)}
	r.ID = 1
	return r
}

var oneDish450 = []PriceLine{{UnitPrice: dec("450"), Quantity: 1}}

func TestComputeOrderAmountsScenarios(t *testing.T) {
	exhausted := code(entity.DiscountFixed, "100")
	exhausted.MaxUses = ptr(5)
	exhausted.UsedCount = 5

	tests := []struct {
		name                           string
		code                           *entity.PromotionCode
		subtotal, fee, discount, final string
		applied                        bool
	}{
		{"no promotion", nil, "450", "150", "0", "600", false},
		{"fixed 100", code(entity.DiscountFixed, "100"), "450", "150", "100", "500", true},
		{"exhausted code is ignored", exhausted, "450", "150", "0", "600", false},
		{"percent 10", code(entity.DiscountPercent, "10"), "450", "150", "45", "555", true},
		{"delivery free", code(entity.DiscountDeliveryFree, "0"), "450", "150", "150", "450", true},
		{"fixed capped at subtotal plus fee", code(entity.DiscountFixed, "1000"), "450", "150", "600", "0", true},
		{"negative fixed gives no discount", code(entity.DiscountFixed, "-50"), "450", "150", "0", "600", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ComputeOrderAmounts(oneDish450, restWithFee("150"), tt.code, testNow)
			assertMoney(t, tt.subtotal, a.Subtotal)
			assertMoney(t, tt.fee, a.DeliveryFee)
			assertMoney(t, tt.discount, a.Discount)
			assertMoney(t, tt.final, a.Final)
			assert.Equal(t, tt.applied, a.PromotionApplied)
			assert.True(t, a.Final.Equal(a.Subtotal.Add(a.DeliveryFee).Sub(a.Discount)) || a.Final.IsZero())
		})
	}
}

func TestPercentDiscountRoundsToCents(t *testing.T) {
	// subtotal 124.99
	lines := []PriceLine{{UnitPrice: dec("33.33"), Quantity: 3}, {UnitPrice: dec("12.50"), Quantity: 2}}
	tests := []struct {
		value, want string
	}{
		{"5", "6.25"},     // 6.2495
		{"10", "12.50"},   // 12.499
		{"12.5", "15.62"}, // 15.62375
		{"15", "18.75"},   // 18.7485
		{"33", "41.25"},   // 41.2467
		{"100", "124.99"},
	}
	for _, tt := range tests {
		a := ComputeOrderAmounts(lines, restWithFee("0"), code(entity.DiscountPercent, tt.value), testNow)
		assert.Equal(t, tt.want, a.Discount.StringFixed(2), "percent %s", tt.value)
		assert.Equal(t, dec("124.99").Sub(dec(tt.want)).StringFixed(2), a.Final.StringFixed(2), "percent %s", tt.value)
	}

	// half a cent rounds away from zero
	a := ComputeOrderAmounts([]PriceLine{{UnitPrice: dec("0.10"), Quantity: 1}}, restWithFee("0"), code(entity.DiscountPercent, "5"), testNow)
	assert.Equal(t, "0.01", a.Discount.StringFixed(2))
}

func TestDeliveryFreeIndependentOfSubtotal(t *testing.T) {
	for _, sub := range []string{"1", "450", "99999.99"} {
		lines := []PriceLine{{UnitPrice: dec(sub), Quantity: 1}}
		a := ComputeOrderAmounts(lines, restWithFee("150"), code(entity.DiscountDeliveryFree, "0"), testNow)
		assertMoney(t, "150", a.Discount, sub)
		assertMoney(t, sub, a.Final, sub)
	}
}

func TestDeliveryFeeDefaults(t *testing.T) {
	a := ComputeOrderAmounts(oneDish450, nil, nil, testNow)
	assertMoney(t, "0", a.DeliveryFee)

	a = ComputeOrderAmounts(oneDish450, restWithFee("-5"), nil, testNow)
	assertMoney(t, "0", a.DeliveryFee)
	assertMoney(t, "450", a.Final)
}

func TestPromotionFailsClosed(t *testing.T) {
	other := uint(99)
	same := uint(1)

	tests := []struct {
		name   string
		mutate func(c *entity.PromotionCode)
		want   bool
	}{
		{"valid", func(c *entity.PromotionCode) {}, true},
		{"code inactive", func(c *entity.PromotionCode) { c.IsActive = false }, false},
		{"promotion inactive", func(c *entity.PromotionCode) { c.Promotion.IsActive = false }, false},
		{"not started", func(c *entity.PromotionCode) { c.Promotion.StartDate = testNow.Add(time.Minute) }, false},
		{"expired", func(c *entity.PromotionCode) { c.Promotion.EndDate = testNow.Add(-time.Minute) }, false},
		{"used up", func(c *entity.PromotionCode) { c.MaxUses = ptr(1); c.UsedCount = 1 }, false},
		{"uses left", func(c *entity.PromotionCode) { c.MaxUses = ptr(2); c.UsedCount = 1 }, true},
		{"other restaurant", func(c *entity.PromotionCode) { c.Promotion.RestaurantID = &other }, false},
		{"this restaurant", func(c *entity.PromotionCode) { c.Promotion.RestaurantID = &same }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := code(entity.DiscountFixed, "100")
			tt.mutate(c)
			assert.Equal(t, tt.want, PromotionApplies(c, restWithFee("150"), testNow))
		})
	}
}

func TestCheckMinimumOrder(t *testing.T) {
	rest := &entity.Restaurant{MinOrderAmount: dec("500")}

	err := CheckMinimumOrder(dec("450"), rest)
	assert.True(t, apperr.Is(err, apperr.Validation))
	assert.NoError(t, CheckMinimumOrder(dec("500"), rest))
	assert.NoError(t, CheckMinimumOrder(dec("1"), &entity.Restaurant{}))
}
