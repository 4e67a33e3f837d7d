package model

// Voucher 优惠券。Discount 为折扣百分比（0-100），MaxDiscount 限制折扣金额上限，
// MinOrderAmount 为使用门槛，Quantity 为剩余可用次数。
type Voucher struct {
	AuditBase
	Code           string   `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Discount       float64  `json:"discount" gorm:"not null"`
	Description    string   `json:"description" gorm:"size:255"`
	Quantity       int      `json:"quantity" gorm:"not null"`
	MinOrderAmount *float64 `json:"min_order_amount,omitempty" gorm:"type:decimal(12,2)"`
	MaxDiscount    *float64 `json:"max_discount,omitempty" gorm:"type:decimal(12,2)"`
}

func (Voucher) TableName() string {
	return "vouchers"
}
