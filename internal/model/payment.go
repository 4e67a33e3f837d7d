package model

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment 支付记录，与订单一对一。SePay 订单只有在 status=success 后才允许 pending -> confirmed。
type Payment struct {
	AuditBase
	OrderID       string        `json:"order_id" gorm:"size:36;uniqueIndex;not null"`
	Method        string        `json:"method" gorm:"size:50;not null"`
	Status        PaymentStatus `json:"status" gorm:"size:50;index;not null;default:pending"`
	Amount        float64       `json:"amount" gorm:"type:decimal(12,2);not null"`
	TransactionID string        `json:"transaction_id" gorm:"size:100"`
}

func (Payment) TableName() string {
	return "payments"
}
