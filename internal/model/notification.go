package model

// 通知类型
const (
	NotificationTypeNewOrder    = "new_order"
	NotificationTypeOrderStatus = "order_status"
)

// Notification 站内通知，落库后经 Hub 推送给在线订阅者
type Notification struct {
	AuditBase
	UserID  string  `json:"user_id" gorm:"size:36;index;not null"` // 接收人
	Type    string  `json:"type" gorm:"size:50;not null"`
	Title   string  `json:"title" gorm:"size:200;not null"`
	Content string  `json:"content" gorm:"size:500"`
	OrderID *string `json:"order_id,omitempty" gorm:"size:36;index"`
	IsRead  bool    `json:"is_read" gorm:"not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}
