package model

import "time"

// User 登录用户（咖啡馆店主）
type User struct {
	ID            string `gorm:"primaryKey;size:64"` // UUID
	Name          string `gorm:"size:200;not null"`
	Email         string `gorm:"size:320;uniqueIndex;not null"`
	PasswordHash  string `gorm:"size:255;not null"`
	EmailVerified bool
	HasOnboarded  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string {
	return "users"
}

// Session 登录会话，JWT 的 jti 即会话 ID
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired 会话是否已过期
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
