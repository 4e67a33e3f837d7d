package model

// Address 收货地址快照
type Address struct {
	AuditBase
	UserID      string `json:"user_id" gorm:"size:36;index;not null"`
	FullName    string `json:"full_name" gorm:"size:200;not null"`
	PhoneNumber string `json:"phone_number" gorm:"size:20;not null"`
	Province    string `json:"province" gorm:"size:100"`
	District    string `json:"district" gorm:"size:100"`
	Ward        string `json:"ward" gorm:"size:100"`
	Detail      string `json:"detail" gorm:"size:255"`
}

func (Address) TableName() string {
	return "addresses"
}
