package model

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 支付方式
const (
	PaymentMethodSepay = "SEPAY" // 异步银行转账网关，需等待回调确认
	PaymentMethodCOD   = "COD"   // 货到付款
)

// Order 订单模型。金额满足 final_amount = total_amount - discount_amount（非负），
// 状态只通过状态机校验后的转移变更，删除只走软删除。
type Order struct {
	AuditBase
	UserID         string      `json:"user_id" gorm:"size:36;index;not null"`
	Status         OrderStatus `json:"status" gorm:"size:50;index;not null;default:pending"`
	PaymentMethod  string      `json:"payment_method" gorm:"size:50;not null"`
	TotalAmount    float64     `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	DiscountAmount float64     `json:"discount_amount" gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount    float64     `json:"final_amount" gorm:"type:decimal(12,2);not null"`
	Note           string      `json:"note" gorm:"size:500"`
	AddressID      *string     `json:"address_id,omitempty" gorm:"size:36"`
	VoucherID      *string     `json:"voucher_id,omitempty" gorm:"size:36"`

	Details []OrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID"`
	Payment *Payment      `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	Voucher *Voucher      `json:"voucher,omitempty" gorm:"foreignKey:VoucherID"`
	Address *Address      `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}

func (Order) TableName() string {
	return "orders"
}

// IsTerminal 是否处于终态（completed / cancelled）
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
