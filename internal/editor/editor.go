// Package editor implements the bill mutation operations: adding and removing
// diners and items, assigning items, and splitting items into portions.
//
// Every operation takes a bill and returns a new bill. The input is never
// modified, and an operation that fails returns the input unchanged together
// with a *models.ValidationError. Operations that reference an item or diner
// missing from the bill are no-ops.
package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/dinesplit/internal/ids"
	"github.com/mmynk/dinesplit/internal/models"
)

// DinerColors is the palette new diners cycle through.
var DinerColors = []string{
	"#818cf8",
	"#f472b6",
	"#34d399",
	"#fbbf24",
	"#a78bfa",
	"#60a5fa",
	"#f87171",
	"#2dd4bf",
}

// Editor performs the operations that create new identities.
type Editor struct {
	ids ids.Generator
	now func() time.Time
}

// New creates an Editor that draws IDs from gen.
func New(gen ids.Generator) *Editor {
	return &Editor{ids: gen, now: time.Now}
}

// WithClock returns a copy of the editor using now for bill dates.
func (e *Editor) WithClock(now func() time.Time) *Editor {
	cp := *e
	cp.now = now
	return &cp
}

// NewBill creates an empty active bill. A blank name is replaced with a
// dated default title.
func (e *Editor) NewBill(name string, taxRate, tipRate float64) (models.Bill, error) {
	if err := validateRates(taxRate, tipRate); err != nil {
		return models.Bill{}, err
	}
	date := e.now().UTC()
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTitle(date)
	}
	return models.Bill{
		ID:      e.ids.NewID(),
		Name:    name,
		Date:    date,
		Items:   []models.Item{},
		Diners:  []models.Diner{},
		TaxRate: taxRate,
		TipRate: tipRate,
		Status:  models.BillStatusActive,
	}, nil
}

// AddItem appends a new unassigned item split equally.
func (e *Editor) AddItem(bill models.Bill, name string, price float64) (models.Bill, error) {
	if err := requireFinite("price", price); err != nil {
		return bill, err
	}
	input := itemInput{Name: strings.TrimSpace(name), Price: price}
	if err := validateInput(input); err != nil {
		return bill, err
	}

	out := bill.Clone()
	out.Items = append(out.Items, models.Item{
		ID:         e.ids.NewID(),
		Name:       input.Name,
		Price:      input.Price,
		AssignedTo: models.DinerIDs{},
		SplitType:  models.SplitEqual,
	})
	return out, nil
}

// AddDiner appends a new diner. Its colour is picked from DinerColors by the
// current number of diners.
func (e *Editor) AddDiner(bill models.Bill, name string) (models.Bill, error) {
	input := dinerInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return bill, err
	}

	out := bill.Clone()
	out.Diners = append(out.Diners, models.Diner{
		ID:    e.ids.NewID(),
		Name:  input.Name,
		Color: DinerColors[len(bill.Diners)%len(DinerColors)],
	})
	return out, nil
}

// SplitItemEvenly replaces an item with n unassigned portions priced
// price/n each, named "Name (i/n)", in the position of the original.
// n must be between 2 and MaxSplitParts.
func (e *Editor) SplitItemEvenly(bill models.Bill, itemID string, n int) (models.Bill, error) {
	if err := validateInput(splitInput{Parts: n}); err != nil {
		return bill, err
	}
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return bill, nil
	}

	original := bill.Items[idx]
	portion := original.Price / float64(n)
	parts := make([]models.Item, n)
	for i := range parts {
		parts[i] = models.Item{
			ID:         e.ids.NewID(),
			Name:       fmt.Sprintf("%s (%d/%d)", original.Name, i+1, n),
			Price:      portion,
			AssignedTo: models.DinerIDs{},
			SplitType:  models.SplitEqual,
		}
	}

	out := bill.Clone()
	items := make([]models.Item, 0, len(out.Items)-1+n)
	items = append(items, out.Items[:idx]...)
	items = append(items, parts...)
	items = append(items, out.Items[idx+1:]...)
	out.Items = items
	return out, nil
}

// AssignItem toggles dinerID in the item's assignment set: added if absent,
// removed if present. Changing the assignees of a percentage or custom item
// resets it to an equal split, since its amounts no longer match.
func AssignItem(bill models.Bill, itemID, dinerID string) models.Bill {
	idx := bill.FindItem(itemID)
	if idx < 0 || bill.FindDiner(dinerID) < 0 {
		return bill
	}

	out := bill.Clone()
	item := &out.Items[idx]
	if item.AssignedTo.Contains(dinerID) {
		item.AssignedTo = item.AssignedTo.Without(dinerID)
	} else {
		item.AssignedTo = item.AssignedTo.With(dinerID)
	}
	resetToEqual(item)
	return out
}

// UnassignAll clears the item's assignment set.
func UnassignAll(bill models.Bill, itemID string) models.Bill {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return bill
	}
	out := bill.Clone()
	out.Items[idx].AssignedTo = models.DinerIDs{}
	resetToEqual(&out.Items[idx])
	return out
}

// RemoveDiner removes the diner and strips it from every item's assignments.
func RemoveDiner(bill models.Bill, dinerID string) models.Bill {
	idx := bill.FindDiner(dinerID)
	if idx < 0 {
		return bill
	}

	out := bill.Clone()
	out.Diners = append(out.Diners[:idx], out.Diners[idx+1:]...)
	for i := range out.Items {
		item := &out.Items[i]
		if !item.AssignedTo.Contains(dinerID) {
			continue
		}
		item.AssignedTo = item.AssignedTo.Without(dinerID)
		resetToEqual(item)
	}
	return out
}

// RemoveItem deletes the item from the bill.
func RemoveItem(bill models.Bill, itemID string) models.Bill {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return bill
	}
	out := bill.Clone()
	out.Items = append(out.Items[:idx], out.Items[idx+1:]...)
	return out
}

// RenameDiner changes a diner's display name.
func RenameDiner(bill models.Bill, dinerID, name string) (models.Bill, error) {
	input := dinerInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return bill, err
	}
	idx := bill.FindDiner(dinerID)
	if idx < 0 {
		return bill, nil
	}
	out := bill.Clone()
	out.Diners[idx].Name = input.Name
	return out, nil
}

// RenameBill changes the bill name. Blank names are rejected.
func RenameBill(bill models.Bill, name string) (models.Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return bill, models.NewValidationError("name", "must not be empty")
	}
	out := bill.Clone()
	out.Name = name
	return out, nil
}

// SetRates replaces the bill's tax and tip rates, both fractions.
func SetRates(bill models.Bill, taxRate, tipRate float64) (models.Bill, error) {
	if err := validateRates(taxRate, tipRate); err != nil {
		return bill, err
	}
	out := bill.Clone()
	out.TaxRate = taxRate
	out.TipRate = tipRate
	return out, nil
}

// Complete marks the bill as completed.
func Complete(bill models.Bill) models.Bill {
	out := bill.Clone()
	out.Status = models.BillStatusCompleted
	return out
}

// resetToEqual drops per-diner amounts that no longer describe the assignees.
func resetToEqual(item *models.Item) {
	item.SplitType = models.SplitEqual
	item.CustomAmounts = nil
}

func validateRates(taxRate, tipRate float64) error {
	if err := requireFinite("taxRate", taxRate); err != nil {
		return err
	}
	if err := requireFinite("tipRate", tipRate); err != nil {
		return err
	}
	if taxRate < 0 {
		return models.NewValidationError("taxRate", "must not be negative")
	}
	if tipRate < 0 {
		return models.NewValidationError("tipRate", "must not be negative")
	}
	return nil
}

// defaultTitle creates a title when the user did not supply one.
func defaultTitle(date time.Time) string {
	return fmt.Sprintf("Bill - %s", date.Format("Jan 2, 2006"))
}
