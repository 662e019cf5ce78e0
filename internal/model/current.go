package model

import "time"

// Статусы заявки на расчёт. Внешние системы присылают также алиасы
// finished/declined — они приводятся к canonical-форме в NormalizeStatus.
const (
	StatusDraft     = "draft"
	StatusFormed    = "formed"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusDeleted   = "deleted"
)

// NormalizeStatus приводит алиасы статусов к каноническим значениям.
func NormalizeStatus(s string) string {
	switch s {
	case "finished":
		return StatusCompleted
	case "declined":
		return StatusRejected
	}
	return s
}

// CanEdit сообщает, допустимы ли мутации заявки в данном статусе.
// Редактируется только черновик.
func CanEdit(status string) bool {
	return NormalizeStatus(status) == StatusDraft
}

// CurrentCalculation — заявка на расчёт силы тока ("корзина" в статусе draft).
// У пользователя может быть не более одного черновика одновременно.
type CurrentCalculation struct {
	ID          uint   `gorm:"primaryKey"`
	Status      string `gorm:"not null;index"`
	CreatorID   string `gorm:"type:uuid;not null;index"`
	Creator     *User  `gorm:"foreignKey:CreatorID"`
	ModeratorID *string `gorm:"type:uuid"`
	Moderator   *User   `gorm:"foreignKey:ModeratorID"`

	VoltageBord float64 `gorm:"not null;default:12"` // напряжение бортовой сети, В

	CreatedAt  time.Time `gorm:"autoCreateTime"`
	FormDate   *time.Time
	FinishDate *time.Time

	Devices []CurrentDevice `gorm:"foreignKey:CurrentID;constraint:OnDelete:CASCADE"`
}

// CurrentDevice — связь заявки и устройства: количество и рассчитанный
// для этой строки ток. Пара (current_id, device_id) уникальна.
type CurrentDevice struct {
	ID        uint `gorm:"primaryKey"`
	CurrentID uint `gorm:"not null;uniqueIndex:idx_current_device"`
	DeviceID  uint `gorm:"not null;uniqueIndex:idx_current_device"`
	Device    *Device `gorm:"foreignKey:DeviceID"`

	Amount   int     `gorm:"not null;default:1"`
	Amperage float64 // А, пересчитывается при каждой мутации черновика
}
