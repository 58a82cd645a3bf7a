package editor

import (
	"fmt"
	"math"

	"github.com/mmynk/dinesplit/internal/models"
)

// Tolerances for amounts entered by hand.
const (
	percentTolerance = 0.01
	amountTolerance  = 0.005
)

// SetItemSplit sets how a shared item is divided among its current assignees.
//
// For SplitEqual, amounts are ignored and cleared. For SplitPercentage the
// amounts are percentages that must sum to 100; for SplitCustom they are
// currency amounts that must sum to the item price. Every assignee needs an
// entry, no entry may name a diner outside the assignment set, and no amount
// may be negative.
func SetItemSplit(bill models.Bill, itemID string, splitType models.SplitType, amounts map[string]float64) (models.Bill, error) {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return bill, nil
	}
	item := bill.Items[idx]

	switch splitType {
	case models.SplitEqual:
		out := bill.Clone()
		resetToEqual(&out.Items[idx])
		return out, nil
	case models.SplitPercentage, models.SplitCustom:
	default:
		return bill, models.NewValidationError("splitType", fmt.Sprintf("unknown split type %q", splitType))
	}

	if len(item.AssignedTo) == 0 {
		return bill, models.NewValidationError("assignedTo", "item has no assignees to split between")
	}

	var sum float64
	for id, v := range amounts {
		if !item.AssignedTo.Contains(id) {
			return bill, models.NewValidationError("customAmounts", fmt.Sprintf("diner %q is not assigned to this item", id))
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return bill, models.NewValidationError("customAmounts", fmt.Sprintf("amount for %q must be a non-negative number", id))
		}
		sum += v
	}
	for _, id := range item.AssignedTo {
		if _, ok := amounts[id]; !ok {
			return bill, models.NewValidationError("customAmounts", fmt.Sprintf("missing amount for diner %q", id))
		}
	}

	if splitType == models.SplitPercentage && math.Abs(sum-100) > percentTolerance {
		return bill, models.NewValidationError("customAmounts", fmt.Sprintf("percentages sum to %.2f, want 100", sum))
	}
	if splitType == models.SplitCustom && math.Abs(sum-item.Price) > amountTolerance {
		return bill, models.NewValidationError("customAmounts", fmt.Sprintf("amounts sum to %.2f, want %.2f", sum, item.Price))
	}

	out := bill.Clone()
	target := &out.Items[idx]
	target.SplitType = splitType
	target.CustomAmounts = make(map[string]float64, len(amounts))
	for id, v := range amounts {
		target.CustomAmounts[id] = v
	}
	return out, nil
}
