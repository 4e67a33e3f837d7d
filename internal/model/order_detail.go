package model

// OrderDetail 订单行项目，价格为下单时快照，下单后只随订单级取消流程变动
type OrderDetail struct {
	AuditBase
	OrderID       string  `json:"order_id" gorm:"size:36;index;not null"`
	ProductTypeID string  `json:"product_type_id" gorm:"size:36;index;not null"`
	Price         float64 `json:"price" gorm:"type:decimal(12,2);not null"`
	Number        int     `json:"number" gorm:"not null"`

	ProductType *ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}
