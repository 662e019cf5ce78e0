package model

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestTotalAmperage(t *testing.T) {
	t.Run("empty list gives zero", func(t *testing.T) {
		if got := TotalAmperage(nil); got != 0 {
			t.Fatalf("TotalAmperage(nil) = %v, want 0", got)
		}
	})

	t.Run("sums per-line currents", func(t *testing.T) {
		devices := []CurrentDevice{
			{DeviceID: 1, Amperage: fptr(1.5)},
			{DeviceID: 2, Amperage: fptr(2.25)},
		}
		if got := TotalAmperage(devices); math.Abs(got-3.75) > 1e-9 {
			t.Fatalf("TotalAmperage = %v, want 3.75", got)
		}
	})

	t.Run("missing and broken values count as zero", func(t *testing.T) {
		devices := []CurrentDevice{
			{DeviceID: 1, Amperage: nil},
			{DeviceID: 2, Amperage: fptr(math.NaN())},
			{DeviceID: 3, Amperage: fptr(math.Inf(1))},
			{DeviceID: 4, Amperage: fptr(2)},
		}
		if got := TotalAmperage(devices); got != 2 {
			t.Fatalf("TotalAmperage = %v, want 2", got)
		}
	})
}

func TestTotal_CompletedUsesServerValue(t *testing.T) {
	c := &CurrentCalculation{
		Status:        StatusCompleted,
		TotalAmperage: fptr(42),
		Devices:       []CurrentDevice{{Amperage: fptr(1)}},
	}
	if got := c.Total(); got != 42 {
		t.Fatalf("Total() = %v, want server value 42", got)
	}

	// для незавершённых заявок итог всегда пересчитывается по строкам
	c.Status = StatusDraft
	if got := c.Total(); got != 1 {
		t.Fatalf("Total() = %v, want recomputed 1", got)
	}

	var nilCalc *CurrentCalculation
	if got := nilCalc.Total(); got != 0 {
		t.Fatalf("nil Total() = %v, want 0", got)
	}
}

func TestNormalizeStatusAndCanEdit(t *testing.T) {
	cases := map[string]string{
		"finished":  StatusCompleted,
		"declined":  StatusRejected,
		"draft":     StatusDraft,
		"formed":    StatusFormed,
		"completed": StatusCompleted,
		"":          StatusUnknown,
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}

	if !CanEdit(StatusDraft) {
		t.Error("draft must be editable")
	}
	for _, s := range []string{StatusFormed, StatusCompleted, StatusRejected, "finished", "declined", ""} {
		if CanEdit(s) {
			t.Errorf("status %q must not be editable", s)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	for _, bad := range []int{0, -1, -100} {
		if err := ValidateAmount(bad); err == nil {
			t.Errorf("ValidateAmount(%d) = nil, want error", bad)
		}
	}
	for _, ok := range []int{1, 2, 1000} {
		if err := ValidateAmount(ok); err != nil {
			t.Errorf("ValidateAmount(%d) = %v, want nil", ok, err)
		}
	}
}

func TestValidateVoltage(t *testing.T) {
	for _, bad := range []float64{0, -12, 48.01, 100, math.NaN()} {
		if err := ValidateVoltage(bad); err == nil {
			t.Errorf("ValidateVoltage(%v) = nil, want error", bad)
		}
	}
	for _, ok := range []float64{0.1, 12, 24, 48} {
		if err := ValidateVoltage(ok); err != nil {
			t.Errorf("ValidateVoltage(%v) = %v, want nil", ok, err)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		StatusDraft:     "Черновик",
		StatusFormed:    "Сформирована",
		"finished":      "Завершена",
		"declined":      "Отклонена",
		StatusUnknown:   "—",
		"something-odd": "something-odd",
	}
	for in, want := range cases {
		if got := StatusLabel(in); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
