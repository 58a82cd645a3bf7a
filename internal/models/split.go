package models

import "time"

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	// BillStatusActive is a bill that is still being edited.
	BillStatusActive BillStatus = "active"
	// BillStatusCompleted is terminal. Edits are not expected but not enforced.
	BillStatusCompleted BillStatus = "completed"
)

// SplitType controls how a shared item is divided among its assignees.
type SplitType string

const (
	// SplitEqual divides the price evenly among assignees.
	SplitEqual SplitType = "equal"
	// SplitPercentage divides the price by per-diner percentages in CustomAmounts.
	SplitPercentage SplitType = "percentage"
	// SplitCustom divides the price by per-diner absolute amounts in CustomAmounts.
	SplitCustom SplitType = "custom"
)

// Bill represents a restaurant bill with items to be split among diners.
// A bill is the unit of persistence and the unit of the split computation.
// It owns its items and diners exclusively.
type Bill struct {
	// ID is the unique identifier for the bill.
	ID string `json:"id" validate:"required"`

	// Name is the human-readable name for the bill (e.g., "Dinner at Bistro Central").
	Name string `json:"name"`

	// Date is when the meal took place.
	Date time.Time `json:"date"`

	// Items are the priced lines on the bill.
	Items []Item `json:"items" validate:"dive"`

	// Diners are the people splitting the bill.
	Diners []Diner `json:"diners" validate:"dive"`

	// TaxRate is a fraction, e.g. 0.085 for 8.5%.
	TaxRate float64 `json:"taxRate" validate:"gte=0"`

	// TipRate is a fraction, e.g. 0.18 for 18%.
	TipRate float64 `json:"tipRate" validate:"gte=0"`

	Status BillStatus `json:"status" validate:"oneof=active completed"`
}

// Item represents a single priced line on a bill.
// Items can be shared among multiple diners.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id" validate:"required"`

	// Name is the dish name (e.g., "Truffle Fries").
	Name string `json:"name" validate:"required"`

	// Price is the pre-tax price of the item. Always positive.
	Price float64 `json:"price" validate:"gt=0"`

	// AssignedTo is the set of diner IDs sharing this item.
	// Empty means unassigned; the item then counts toward nobody's total.
	AssignedTo DinerIDs `json:"assignedTo"`

	SplitType SplitType `json:"splitType" validate:"oneof=equal percentage custom"`

	// CustomAmounts maps diner ID to a percentage (SplitPercentage) or an
	// absolute amount (SplitCustom). Unused for SplitEqual.
	CustomAmounts map[string]float64 `json:"customAmounts,omitempty"`
}

// Diner represents a participant in a bill.
type Diner struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// ItemShare represents an item's share for one diner.
type ItemShare struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"` // This diner's share of the item
}

// DinerTotal represents one diner's calculated share of a bill.
// It is derived on every read and never persisted.
type DinerTotal struct {
	DinerID string `json:"dinerId"`
	Name    string `json:"name"`
	Color   string `json:"color"`

	// Subtotal is the sum of this diner's item shares (pre-tax).
	Subtotal float64 `json:"subtotal"`

	// TaxAmount is Subtotal × bill.TaxRate.
	TaxAmount float64 `json:"taxAmount"`

	// TipAmount is Subtotal × bill.TipRate.
	TipAmount float64 `json:"tipAmount"`

	// Total is Subtotal + TaxAmount + TipAmount, unrounded.
	Total float64 `json:"total"`

	// RoundedTotal is Total after the selected rounding mode.
	RoundedTotal float64 `json:"roundedTotal"`

	// Items are the items assigned to this diner with their share amounts.
	Items []ItemShare `json:"items"`
}

// BillSummary holds bill-level totals derived from a bill.
type BillSummary struct {
	// Subtotal is the sum of all item prices, assigned or not.
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"taxAmount"`
	TipAmount  float64 `json:"tipAmount"`
	GrandTotal float64 `json:"grandTotal"`

	AssignedSubtotal   float64  `json:"assignedSubtotal"`
	UnassignedSubtotal float64  `json:"unassignedSubtotal"`
	UnassignedItemIDs  []string `json:"unassignedItemIds"`

	// RoundedTotal is the sum of every diner's RoundedTotal.
	RoundedTotal float64 `json:"roundedTotal"`

	// RoundingDelta is RoundedTotal minus the sum of exact diner totals.
	RoundingDelta float64 `json:"roundingDelta"`
}

// FindItem returns the index of the item with the given ID, or -1.
func (b *Bill) FindItem(itemID string) int {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindDiner returns the index of the diner with the given ID, or -1.
func (b *Bill) FindDiner(dinerID string) int {
	for i := range b.Diners {
		if b.Diners[i].ID == dinerID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the bill. Transformations work on clones so
// that callers holding the original never observe a change.
func (b Bill) Clone() Bill {
	out := b
	if b.Items != nil {
		out.Items = make([]Item, len(b.Items))
		for i, item := range b.Items {
			out.Items[i] = item.Clone()
		}
	}
	if b.Diners != nil {
		out.Diners = make([]Diner, len(b.Diners))
		copy(out.Diners, b.Diners)
	}
	return out
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.AssignedTo != nil {
		out.AssignedTo = make(DinerIDs, len(it.AssignedTo))
		copy(out.AssignedTo, it.AssignedTo)
	}
	if it.CustomAmounts != nil {
		out.CustomAmounts = make(map[string]float64, len(it.CustomAmounts))
		for k, v := range it.CustomAmounts {
			out.CustomAmounts[k] = v
		}
	}
	return out
}
