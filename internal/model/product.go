package model

// Product 商品（SPU），可购买的是其下的 ProductType 变体
type Product struct {
	AuditBase
	Name        string `json:"name" gorm:"size:200;not null"`
	Description string `json:"description" gorm:"size:500"`
	Thumbnail   string `json:"thumbnail" gorm:"size:255"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`

	Types []ProductType `json:"types,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}
