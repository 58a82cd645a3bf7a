package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/dinesplit/internal/models"
)

// billRecord is the on-disk shape of a bill. Besides the current layout it
// accepts the fields written by earlier app versions:
//
//   - restaurantName instead of name
//   - tipPercentage instead of tipRate
//   - percentage-valued rates (8.5 rather than 0.085) whenever restaurantName
//     or tipPercentage is present
//   - avatarColor instead of color on diners
//   - assignedTo as a single diner ID or null (handled by models.DinerIDs)
//   - no status or splitType
type billRecord struct {
	models.Bill

	Diners []dinerRecord `json:"diners"`

	RestaurantName string   `json:"restaurantName,omitempty"`
	TipPercentage  *float64 `json:"tipPercentage,omitempty"`
}

type dinerRecord struct {
	models.Diner
	AvatarColor string `json:"avatarColor,omitempty"`
}

// decodeBills parses a stored collection, migrating older records.
func decodeBills(raw []byte) ([]models.Bill, error) {
	var records []billRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}
	bills := make([]models.Bill, len(records))
	for i, rec := range records {
		bills[i] = migrate(rec)
	}
	return bills, nil
}

// encodeBills serializes the collection in the current layout.
func encodeBills(bills []models.Bill) ([]byte, error) {
	if bills == nil {
		bills = []models.Bill{}
	}
	raw, err := json.Marshal(bills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bills: %w", err)
	}
	return raw, nil
}

func migrate(rec billRecord) models.Bill {
	bill := rec.Bill

	if rec.Diners != nil {
		bill.Diners = make([]models.Diner, len(rec.Diners))
		for i, d := range rec.Diners {
			diner := d.Diner
			if diner.Color == "" {
				diner.Color = d.AvatarColor
			}
			bill.Diners[i] = diner
		}
	}

	percentScale := rec.RestaurantName != "" || rec.TipPercentage != nil
	if bill.Name == "" {
		bill.Name = rec.RestaurantName
	}
	if rec.TipPercentage != nil {
		bill.TipRate = *rec.TipPercentage
	}
	if percentScale {
		bill.TaxRate /= 100
		bill.TipRate /= 100
	}

	if bill.Status == "" {
		bill.Status = models.BillStatusActive
	}
	for i := range bill.Items {
		if bill.Items[i].SplitType == "" {
			bill.Items[i].SplitType = models.SplitEqual
		}
	}
	return bill
}
