package services

import (
	"github.com/bennblr/food-app/entity"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders the courier hand-off code of an order.
type QRGenerator interface {
	Generate(o *entity.Order) ([]byte, error)
}

type DefaultQRGenerator struct {
	Size int
}

// Generate encodes the order number as a PNG.
func (g DefaultQRGenerator) Generate(o *entity.Order) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(o.OrderNumber, qrcode.Medium, size)
}
