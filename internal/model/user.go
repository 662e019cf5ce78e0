package model

import "time"

// User — серверная модель пользователя. ID — UUID в текстовом виде,
// как его отдаёт API (поле id сериализатора).
type User struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Login       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"` // bcrypt-хеш
	IsModerator bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
