package calculator

import (
	"github.com/mmynk/dinesplit/internal/models"
)

// ItemShares returns how much of the item's price each assignee owes.
// Unassigned items return an empty map.
//
// Equal items split price/|assignedTo|. Percentage and custom items use their
// CustomAmounts as weights normalized over the assignees, so the shares always
// add up to the price; without usable weights they fall back to equal.
func ItemShares(item models.Item) map[string]float64 {
	shares := make(map[string]float64, len(item.AssignedTo))
	if len(item.AssignedTo) == 0 {
		return shares
	}

	if item.SplitType == models.SplitPercentage || item.SplitType == models.SplitCustom {
		var weightSum float64
		for _, id := range item.AssignedTo {
			if w := item.CustomAmounts[id]; w > 0 {
				weightSum += w
			}
		}
		if weightSum > 0 {
			for _, id := range item.AssignedTo {
				w := item.CustomAmounts[id]
				if w < 0 {
					w = 0
				}
				shares[id] = item.Price * (w / weightSum)
			}
			return shares
		}
	}

	perPerson := item.Price / float64(len(item.AssignedTo))
	for _, id := range item.AssignedTo {
		shares[id] = perPerson
	}
	return shares
}

// ComputeTotals computes how much each diner owes, in bill diner order.
//
// Tax and tip are allocated proportionally to each diner's item subtotal:
// total = subtotal × (1 + taxRate + tipRate). A diner with no items owes
// nothing. Rounding is applied once, to the final total only.
//
// ComputeTotals has no side effects and never modifies bill.
func ComputeTotals(bill models.Bill, mode RoundingMode) []models.DinerTotal {
	totals := make([]models.DinerTotal, len(bill.Diners))
	index := make(map[string]int, len(bill.Diners))

	// Initialize totals for all diners
	for i, d := range bill.Diners {
		totals[i] = models.DinerTotal{
			DinerID: d.ID,
			Name:    d.Name,
			Color:   d.Color,
			Items:   []models.ItemShare{},
		}
		index[d.ID] = i
	}

	// Calculate each diner's subtotal based on assigned items
	for _, item := range bill.Items {
		shares := ItemShares(item)
		// Iterate AssignedTo rather than the map so item order per diner is stable.
		for _, id := range item.AssignedTo {
			i, ok := index[id]
			if !ok {
				continue
			}
			amount := shares[id]
			totals[i].Subtotal += amount
			totals[i].Items = append(totals[i].Items, models.ItemShare{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: amount,
			})
		}
	}

	// Apply proportional tax and tip, then round the final total
	for i := range totals {
		t := &totals[i]
		t.TaxAmount = t.Subtotal * bill.TaxRate
		t.TipAmount = t.Subtotal * bill.TipRate
		t.Total = t.Subtotal + t.TaxAmount + t.TipAmount
		t.RoundedTotal = mode.Apply(t.Total)
	}

	return totals
}

// Summarize computes bill-level totals. Subtotal, tax, tip and grand total
// cover every item, assigned or not; the assigned/unassigned split shows how
// much of the bill the diner totals do not yet account for.
func Summarize(bill models.Bill, mode RoundingMode) models.BillSummary {
	summary := models.BillSummary{UnassignedItemIDs: []string{}}

	for _, item := range bill.Items {
		summary.Subtotal += item.Price
		if len(item.AssignedTo) == 0 {
			summary.UnassignedSubtotal += item.Price
			summary.UnassignedItemIDs = append(summary.UnassignedItemIDs, item.ID)
			continue
		}
		summary.AssignedSubtotal += item.Price
	}
	summary.TaxAmount = summary.Subtotal * bill.TaxRate
	summary.TipAmount = summary.Subtotal * bill.TipRate
	summary.GrandTotal = summary.Subtotal + summary.TaxAmount + summary.TipAmount

	var exact float64
	for _, t := range ComputeTotals(bill, mode) {
		exact += t.Total
		summary.RoundedTotal += t.RoundedTotal
	}
	summary.RoundingDelta = summary.RoundedTotal - exact

	return summary
}
