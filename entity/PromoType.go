package entity

type DiscountType string

const (
	DiscountPercent      DiscountType = "PERCENT"
	DiscountFixed        DiscountType = "FIXED"
	DiscountDeliveryFree DiscountType = "DELIVERY_FREE"
)
