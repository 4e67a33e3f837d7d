package model

// 用户角色
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User 用户模型，Password 为 bcrypt 哈希
type User struct {
	AuditBase
	Email     string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string `json:"-" gorm:"size:100;not null"`
	FirstName string `json:"first_name" gorm:"size:100"`
	LastName  string `json:"last_name" gorm:"size:100"`
	Role      string `json:"role" gorm:"size:50;not null;default:customer"`
}

func (User) TableName() string {
	return "users"
}

// FullName 拼接显示名，为空时回退到邮箱
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
