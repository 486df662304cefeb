package components

import "testing"

func TestFormatTRY(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₺0"},
		{"small whole", 500, "₺500"},
		{"thousands", 12500, "₺12.500"},
		{"millions", 1250000, "₺1.250.000"},
		{"with cents", 12500.50, "₺12.500,50"},
		{"single cent digit", 10.05, "₺10,05"},
		{"rounds cents", 99.999, "₺100"},
		{"negative", -4500, "-₺4.500"},
		{"negative with cents", -4500.25, "-₺4.500,25"},
		{"exact three digits", 999, "₺999"},
		{"four digits", 1000, "₺1.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTRY(tt.amount); got != tt.want {
				t.Errorf("FormatTRY(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
