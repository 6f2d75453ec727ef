package entity

// PaymentMethod is recorded on the order; nothing is charged.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentCardOnline  PaymentMethod = "CARD_ONLINE"
	PaymentCardCourier PaymentMethod = "CARD_COURIER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCardOnline, PaymentCardCourier:
		return true
	}
	return false
}
