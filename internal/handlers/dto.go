package handlers

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/service"
	"encoding/json"
	"net/http"
	"time"
)

// DTO повторяют формат сериализаторов API (snake_case, как в swagger).

type DeviceJSON struct {
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

type CurrentDeviceJSON struct {
	CurrDevID   uint     `json:"curr_dev_id,omitempty"`
	CurrentID   uint     `json:"current_id,omitempty"`
	DeviceID    uint     `json:"device_id"`
	Amount      int      `json:"amount,omitempty"`
	Amperage    *float64 `json:"amperage,omitempty"`
	DeviceName  string   `json:"device_name,omitempty"`
	DevicePower float64  `json:"device_power,omitempty"`
	DeviceImage string   `json:"device_image,omitempty"`
}

type CurrentJSON struct {
	CurrentID      uint                `json:"current_id"`
	Status         string              `json:"status"`
	CreatorLogin   string              `json:"creator_login,omitempty"`
	CreatedAt      string              `json:"created_at,omitempty"`
	FormDate       string              `json:"form_date,omitempty"`
	FinishDate     string              `json:"finish_date,omitempty"`
	ModeratorLogin string              `json:"moderator_login,omitempty"`
	VoltageBord    float64             `json:"voltage_bord,omitempty"`
	Devices        []CurrentDeviceJSON `json:"devices,omitempty"`
	DevicesCount   int                 `json:"devices_count"`
	TotalAmperage  *float64            `json:"total_amperage,omitempty"`
}

type UserJSON struct {
	ID          string `json:"id,omitempty"`
	Login       string `json:"login"`
	Password    string `json:"password,omitempty"`
	IsModerator bool   `json:"is_moderator"`
}

func toDeviceJSON(d *model.Device) DeviceJSON {
	return DeviceJSON{
		DeviceID:        d.ID,
		Name:            d.Name,
		Type:            d.Type,
		PowerNominal:    d.PowerNominal,
		Resistance:      d.Resistance,
		VoltageNominal:  d.VoltageNominal,
		CoeffReserve:    d.CoeffReserve,
		CoeffEfficiency: d.CoeffEfficiency,
		CurrentRequired: d.CurrentRequired,
		Description:     d.Description,
		Image:           d.Image,
		InStock:         d.InStock,
		IsDelete:        d.IsDelete,
	}
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// toCurrentJSON сериализует заявку; withDevices добавляет строки устройств
// и суммарный ток (ответы cart/detail).
func toCurrentJSON(c *model.CurrentCalculation, withDevices bool) CurrentJSON {
	out := CurrentJSON{
		CurrentID:    c.ID,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		FormDate:     fmtDate(c.FormDate),
		FinishDate:   fmtDate(c.FinishDate),
		VoltageBord:  c.VoltageBord,
		DevicesCount: len(c.Devices),
	}
	if c.Creator != nil {
		out.CreatorLogin = c.Creator.Login
	}
	if c.Moderator != nil {
		out.ModeratorLogin = c.Moderator.Login
	}
	if withDevices {
		for _, cd := range c.Devices {
			amperage := cd.Amperage
			row := CurrentDeviceJSON{
				CurrDevID: cd.ID,
				CurrentID: cd.CurrentID,
				DeviceID:  cd.DeviceID,
				Amount:    cd.Amount,
				Amperage:  &amperage,
			}
			if cd.Device != nil {
				row.DeviceName = cd.Device.Name
				row.DevicePower = cd.Device.PowerNominal
				row.DeviceImage = cd.Device.Image
			}
			out.Devices = append(out.Devices, row)
		}
		total := service.TotalAmperage(c)
		out.TotalAmperage = &total
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorJSON отвечает телом {"description": "..."} — формат, который
// разбирает клиент.
func errorJSON(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, map[string]string{"description": description})
}
