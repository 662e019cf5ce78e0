package model

import (
	"errors"
	"math"
)

// Статусы заявки. Сервер может присылать алиасы finished/declined.
const (
	StatusDraft     = "draft"
	StatusFormed    = "formed"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	// StatusUnknown — статус ещё не загружен.
	StatusUnknown = ""
)

// Доменные ошибки клиентской стороны: все ловятся ДО сетевого вызова.
var (
	// ErrEditNotAllowed — мутация заявки вне статуса draft.
	ErrEditNotAllowed = errors.New("редактировать можно только черновик")
	// ErrInvalidQuantity — количество не целое ≥ 1.
	ErrInvalidQuantity = errors.New("количество должно быть не меньше 1")
	// ErrInvalidVoltage — напряжение вне диапазона (0, 48].
	ErrInvalidVoltage = errors.New("напряжение должно быть в диапазоне (0, 48] В")
	// ErrEmptyCalculation — формирование заявки без устройств.
	ErrEmptyCalculation = errors.New("добавьте устройства в расчёт")
)

// MaxVoltageBord — верхняя граница напряжения бортовой сети, В.
const MaxVoltageBord = 48

// CurrentDevice — строка заявки: устройство, количество, ток строки.
// Amperage — указатель: отсутствие значения трактуется как 0.
type CurrentDevice struct {
	CurrDevID   uint     `json:"curr_dev_id,omitempty"`
	CurrentID   uint     `json:"current_id,omitempty"`
	DeviceID    uint     `json:"device_id"`
	Amount      int      `json:"amount,omitempty"`
	Amperage    *float64 `json:"amperage,omitempty"`
	DeviceName  string   `json:"device_name,omitempty"`
	DevicePower float64  `json:"device_power,omitempty"`
	DeviceImage string   `json:"device_image,omitempty"`
}

// CurrentCalculation — заявка на расчёт (черновик = корзина).
type CurrentCalculation struct {
	CurrentID      uint            `json:"current_id"`
	Status         string          `json:"status"`
	CreatorLogin   string          `json:"creator_login,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	FormDate       string          `json:"form_date,omitempty"`
	FinishDate     string          `json:"finish_date,omitempty"`
	ModeratorLogin string          `json:"moderator_login,omitempty"`
	VoltageBord    float64         `json:"voltage_bord,omitempty"`
	Devices        []CurrentDevice `json:"devices,omitempty"`
	DevicesCount   int             `json:"devices_count,omitempty"`
	TotalAmperage  *float64        `json:"total_amperage,omitempty"`
}

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
func CanEdit(status string) bool {
	return NormalizeStatus(status) == StatusDraft
}

// TotalAmperage — суммарный ток по строкам заявки. Отсутствующие и
// некорректные (NaN/Inf) значения считаются нулём; пустой список даёт 0.
func TotalAmperage(devices []CurrentDevice) float64 {
	var total float64
	for _, cd := range devices {
		if cd.Amperage == nil {
			continue
		}
		v := *cd.Amperage
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	return total
}

// Total возвращает итоговый ток заявки: для завершённой — серверное
// значение как есть, иначе пересчёт по текущему списку строк.
func (c *CurrentCalculation) Total() float64 {
	if c == nil {
		return 0
	}
	if NormalizeStatus(c.Status) == StatusCompleted && c.TotalAmperage != nil {
		return *c.TotalAmperage
	}
	return TotalAmperage(c.Devices)
}

// ValidateAmount проверяет количество устройства в строке.
func ValidateAmount(amount int) error {
	if amount < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateVoltage проверяет напряжение бортовой сети.
func ValidateVoltage(v float64) error {
	if math.IsNaN(v) || v <= 0 || v > MaxVoltageBord {
		return ErrInvalidVoltage
	}
	return nil
}

// StatusLabel — человекочитаемый статус для вывода в CLI.
func StatusLabel(status string) string {
	switch NormalizeStatus(status) {
	case StatusDraft:
		return "Черновик"
	case StatusFormed:
		return "Сформирована"
	case StatusCompleted:
		return "Завершена"
	case StatusRejected:
		return "Отклонена"
	case StatusUnknown:
		return "—"
	}
	return status
}
