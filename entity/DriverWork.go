package entity

import (
	"time"

	"gorm.io/gorm"
)

// DriverWork is one claim of an order by a driver. The row is open until
// the driver delivers or an admin takes the order back; a released order
// can be claimed again, so one order may have several rows.
type DriverWork struct {
	gorm.Model
	OrderID     uint       `gorm:"index;not null" json:"orderId"`
	DriverID    uint       `gorm:"index;not null" json:"driverId"`
	ClaimedAt   time.Time  `gorm:"not null" json:"claimedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	ReleasedAt  *time.Time `json:"releasedAt,omitempty"`
}

// Open: ยังไม่ส่งและยังไม่ถูกถอน
func (w DriverWork) Open() bool {
	return w.DeliveredAt == nil && w.ReleasedAt == nil
}
