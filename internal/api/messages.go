package api

import (
	"time"

	"github.com/mmynk/dinesplit/internal/models"
)

// BillResponse is returned by every operation that changes a bill.
type BillResponse struct {
	Bill models.Bill `json:"bill"`
}

type CreateBillRequest struct {
	Name    string  `json:"name"`
	TaxRate float64 `json:"taxRate"`
	TipRate float64 `json:"tipRate"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

// GetBillResponse reports a missing bill with Found=false rather than an error.
type GetBillResponse struct {
	Bill  *models.Bill `json:"bill,omitempty"`
	Found bool         `json:"found"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

type DeleteBillRequest struct {
	BillID string `json:"billId"`
}

type DeleteBillResponse struct{}

// UpdateBillRequest changes only the fields that are set.
type UpdateBillRequest struct {
	BillID   string   `json:"billId"`
	Name     *string  `json:"name,omitempty"`
	TaxRate  *float64 `json:"taxRate,omitempty"`
	TipRate  *float64 `json:"tipRate,omitempty"`
	Complete bool     `json:"complete,omitempty"`
}

type AddDinerRequest struct {
	BillID string `json:"billId"`
	Name   string `json:"name"`
}

type RemoveDinerRequest struct {
	BillID  string `json:"billId"`
	DinerID string `json:"dinerId"`
}

type RenameDinerRequest struct {
	BillID  string `json:"billId"`
	DinerID string `json:"dinerId"`
	Name    string `json:"name"`
}

type AddItemRequest struct {
	BillID string  `json:"billId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

type RemoveItemRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
}

// AssignItemRequest toggles DinerID on the item.
type AssignItemRequest struct {
	BillID  string `json:"billId"`
	ItemID  string `json:"itemId"`
	DinerID string `json:"dinerId"`
}

type UnassignItemRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
}

type SplitItemRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
	Parts  int    `json:"parts"`
}

type SetItemSplitRequest struct {
	BillID    string             `json:"billId"`
	ItemID    string             `json:"itemId"`
	SplitType models.SplitType   `json:"splitType"`
	Amounts   map[string]float64 `json:"amounts,omitempty"`
}

// CalculateTotalsRequest selects the rounding mode for this call only;
// empty means no rounding.
type CalculateTotalsRequest struct {
	BillID       string `json:"billId"`
	RoundingMode string `json:"roundingMode,omitempty"`
}

type CalculateTotalsResponse struct {
	Totals       []models.DinerTotal `json:"totals"`
	Summary      models.BillSummary  `json:"summary"`
	RoundingMode string              `json:"roundingMode"`
}

type ShareBillRequest struct {
	BillID       string `json:"billId"`
	RoundingMode string `json:"roundingMode,omitempty"`
}

// PaymentLink is what one diner opens to settle their share.
type PaymentLink struct {
	DinerID string  `json:"dinerId"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	URL     string  `json:"url"`
}

type ShareBillResponse struct {
	Token        string        `json:"token"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	Message      string        `json:"message"`
	PaymentLinks []PaymentLink `json:"paymentLinks"`
}

type GetSharedBillRequest struct {
	Token        string `json:"token"`
	RoundingMode string `json:"roundingMode,omitempty"`
}

type GetSharedBillResponse struct {
	Bill    models.Bill         `json:"bill"`
	Totals  []models.DinerTotal `json:"totals"`
	Summary models.BillSummary  `json:"summary"`
}
