package model

// ProductType 商品变体（SKU），带独立价格与库存。
// 库存不变式：stock >= 0，下单扣减、取消/超时恢复都走条件更新。
type ProductType struct {
	AuditBase
	ProductID string  `json:"product_id" gorm:"size:36;index;not null"`
	Volume    string  `json:"volume" gorm:"size:50"`
	Price     float64 `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock     int     `json:"stock" gorm:"not null;default:0"`
	ImagePath string  `json:"image_path" gorm:"size:255"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductType) TableName() string {
	return "product_types"
}
