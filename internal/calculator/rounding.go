package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/money"
)

// RoundingMode is applied to each diner's final total for display and payment.
// It is chosen per view and never stored on a bill.
type RoundingMode string

const (
	RoundNone    RoundingMode = "none"
	RoundUp      RoundingMode = "up"
	RoundDown    RoundingMode = "down"
	RoundNearest RoundingMode = "nearest"
)

// RoundingModes lists every supported mode.
var RoundingModes = []RoundingMode{RoundNone, RoundUp, RoundDown, RoundNearest}

// ParseRoundingMode parses a mode name. An empty string means RoundNone.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch mode := RoundingMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return RoundNone, nil
	case RoundNone, RoundUp, RoundDown, RoundNearest:
		return mode, nil
	default:
		return "", models.NewValidationError("roundingMode", fmt.Sprintf("unknown mode %q", s))
	}
}

// Apply rounds total to a whole currency unit according to the mode.
// RoundNone (and any unknown mode) returns total unchanged.
func (m RoundingMode) Apply(total float64) float64 {
	switch m {
	case RoundUp:
		return money.Ceil(total)
	case RoundDown:
		return money.Floor(total)
	case RoundNearest:
		return money.RoundHalfUp(total)
	default:
		return total
	}
}

func (m RoundingMode) String() string {
	if m == "" {
		return string(RoundNone)
	}
	return string(m)
}
