package model

import "time"

// Device — электроприбор из каталога. Удаление логическое (is_delete),
// удалённые устройства не попадают в выдачу списка.
type Device struct {
	ID              uint    `gorm:"primaryKey"`
	Name            string  `gorm:"not null;index"`
	Type            string
	PowerNominal    float64 `gorm:"not null"` // Вт
	VoltageNominal  float64 // В
	Resistance      float64 // Ом
	CoeffReserve    float64 `gorm:"default:1"`
	CoeffEfficiency float64 `gorm:"default:1"`
	CurrentRequired float64 // А, номинальный ток устройства
	Description     string
	Image           string
	InStock         bool `gorm:"not null;default:true"`
	IsDelete        bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
