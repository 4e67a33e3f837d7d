package model

// Wishlist 心愿单
type Wishlist struct {
	AuditBase
	UserID string `json:"user_id" gorm:"size:36;uniqueIndex;not null"`

	Items []WishlistItem `json:"items,omitempty" gorm:"foreignKey:WishlistID"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem 心愿单条目
type WishlistItem struct {
	ItemBase
	WishlistID    string `json:"wishlist_id" gorm:"size:36;index:idx_wishlist_pt,unique;not null"`
	ProductTypeID string `json:"product_type_id" gorm:"size:36;index:idx_wishlist_pt,unique;not null"`

	ProductType *ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
