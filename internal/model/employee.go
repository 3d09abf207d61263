package model

// Employee 员工花名册
// 注意: 目前没有 cafe_id，是全局名单，任何已登录用户可见
type Employee struct {
	BaseModel
	AuditMixin
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:320;not null;index"`
	Role      string `gorm:"size:100;not null"`
	Active    bool
}

func (Employee) TableName() string {
	return "employees"
}
