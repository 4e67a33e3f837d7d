package model

// Cart 购物车，每个用户一个
type Cart struct {
	AuditBase
	UserID string `json:"user_id" gorm:"size:36;uniqueIndex;not null"`

	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车条目
type CartItem struct {
	ItemBase
	CartID        string `json:"cart_id" gorm:"size:36;index:idx_cart_pt,unique;not null"`
	ProductTypeID string `json:"product_type_id" gorm:"size:36;index:idx_cart_pt,unique;not null"`
	Number        int    `json:"number" gorm:"not null"`

	ProductType *ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
