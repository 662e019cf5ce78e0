package model

// Device — устройство каталога в формате API (snake_case поля сериализатора).
type Device struct {
	DeviceID        uint    `json:"device_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type,omitempty"`
	PowerNominal    float64 `json:"power_nominal"`
	Resistance      float64 `json:"resistance,omitempty"`
	VoltageNominal  float64 `json:"voltage_nominal,omitempty"`
	CoeffReserve    float64 `json:"coeff_reserve,omitempty"`
	CoeffEfficiency float64 `json:"coeff_efficiency,omitempty"`
	CurrentRequired float64 `json:"current_required,omitempty"`
	Description     string  `json:"description,omitempty"`
	Image           string  `json:"image,omitempty"`
	InStock         bool    `json:"in_stock"`
	IsDelete        bool    `json:"is_delete,omitempty"`
}

// User — профиль пользователя.
type User struct {
	ID          string `json:"id,omitempty"`
	Login       string `json:"login"`
	Password    string `json:"password,omitempty"`
	IsModerator bool   `json:"is_moderator"`
}
