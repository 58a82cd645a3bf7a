package calculator

import (
	"errors"
	"testing"

	"github.com/mmynk/dinesplit/internal/models"
)

func TestRoundingMode_Apply(t *testing.T) {
	tests := []struct {
		total float64
		mode  RoundingMode
		want  float64
	}{
		{12.30, RoundNone, 12.30},
		{12.30, RoundUp, 13},
		{12.30, RoundDown, 12},
		{12.30, RoundNearest, 12},
		{12.50, RoundNearest, 13},
		{12.50, RoundUp, 13},
		{12.50, RoundDown, 12},
		{12.00, RoundUp, 12},
		{0, RoundUp, 0},
		{6.3, RoundNearest, 6},
		{31.5, RoundNearest, 32},
		// Totals are settled to cents before whole-unit rounding.
		{12.001, RoundUp, 12},
		{12.004, RoundDown, 12},
		{12.495, RoundNearest, 13},
		{12.494, RoundNearest, 12},
		{11.999, RoundDown, 12},
	}
	for _, tt := range tests {
		if got := tt.mode.Apply(tt.total); got != tt.want {
			t.Errorf("%s.Apply(%v) = %v, want %v", tt.mode, tt.total, got, tt.want)
		}
	}
}

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RoundingMode
		wantErr bool
	}{
		{"", RoundNone, false},
		{"none", RoundNone, false},
		{"UP", RoundUp, false},
		{" down ", RoundDown, false},
		{"nearest", RoundNearest, false},
		{"banker", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRoundingMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRoundingMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("ParseRoundingMode(%q) error = %v, want validation error", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRoundingMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
