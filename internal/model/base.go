package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditBase 公共审计字段：uuid 主键、时间戳、软删除、操作人
type AuditBase struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	CreatedBy *string        `json:"created_by,omitempty" gorm:"size:36"`
	UpdatedBy *string        `json:"updated_by,omitempty" gorm:"size:36"`
	DeletedBy *string        `json:"-" gorm:"size:36"`
}

// BeforeCreate 自动生成 uuid 主键
func (b *AuditBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ItemBase 行项目公共字段：uuid 主键 + 时间戳，硬删除。
// 购物车/心愿单条目带唯一索引，软删除会让删过的条目挡住重新加入。
type ItemBase struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (b *ItemBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
