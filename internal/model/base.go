package model

import "time"

// BaseModel 通用主键与时间戳（业务数据硬删除，不带 DeletedAt）
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditMixin 审计字段 (只记录，不参与 WHERE 查询权限)
// 由 GORM 回调从请求上下文填充
type AuditMixin struct {
	CreatedBy string `gorm:"size:64;index" json:"created_by,omitempty"` // 创建人 UserID
	UpdatedBy string `gorm:"size:64" json:"updated_by,omitempty"`       // 最后修改人 UserID
}

// All 所有需要迁移的模型
func All() []interface{} {
	return []interface{}{
		// Identity
		&User{}, &Session{},
		// Cafe
		&Cafe{}, &MenuItem{}, &Ingredient{}, &Supplier{},
		// Staff
		&Employee{},
	}
}
