package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/calculator"
	"github.com/mmynk/dinesplit/internal/editor"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/share"
	"github.com/mmynk/dinesplit/internal/storage"
)

var errBillIDRequired = errors.New("bill_id is required")

// BillService implements the Connect BillService.
// Every mutation runs as one store.Update so concurrent edits of the same
// bill are applied in sequence.
type BillService struct {
	api.UnimplementedBillServiceHandler
	store          storage.Store
	editor         *editor.Editor
	tokens         *share.TokenManager
	paymentBaseURL string
}

// NewBillService creates a BillService backed by store. Share tokens are
// signed by tokens; payment links point at paymentBaseURL, or
// share.DefaultPaymentBaseURL when empty.
func NewBillService(store storage.Store, ed *editor.Editor, tokens *share.TokenManager, paymentBaseURL string) *BillService {
	return &BillService{
		store:          store,
		editor:         ed,
		tokens:         tokens,
		paymentBaseURL: paymentBaseURL,
	}
}

// CreateBill creates an empty bill and persists it.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.editor.NewBill(req.Msg.Name, req.Msg.TaxRate, req.Msg.TipRate)
	if err != nil {
		return nil, toConnectError("CreateBill", err)
	}
	if err := s.store.Upsert(ctx, bill); err != nil {
		return nil, toConnectError("CreateBill", err)
	}

	slog.Info("Bill created", "bill_id", bill.ID, "name", bill.Name)
	return connect.NewResponse(&api.BillResponse{Bill: bill}), nil
}

// GetBill retrieves a bill. A missing bill is reported with Found=false.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errBillIDRequired)
	}

	bill, found, err := s.store.Get(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError("GetBill", err)
	}
	if !found {
		slog.Debug("Bill not found", "bill_id", req.Msg.BillID)
		return connect.NewResponse(&api.GetBillResponse{Found: false}), nil
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: &bill, Found: true}), nil
}

// ListBills returns every stored bill in creation order.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return nil, toConnectError("ListBills", err)
	}
	slog.Debug("Listed bills", "count", len(bills))
	return connect.NewResponse(&api.ListBillsResponse{Bills: bills}), nil
}

// DeleteBill removes a bill. Deleting an unknown bill succeeds.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errBillIDRequired)
	}
	if err := s.store.Delete(ctx, req.Msg.BillID); err != nil {
		return nil, toConnectError("DeleteBill", err)
	}
	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// UpdateBill renames the bill, changes its rates or marks it completed.
// Unset fields keep their current values.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error) {
	msg := req.Msg
	return s.mutate(ctx, "UpdateBill", msg.BillID, func(bill models.Bill) (models.Bill, error) {
		var err error
		if msg.Name != nil {
			if bill, err = editor.RenameBill(bill, *msg.Name); err != nil {
				return bill, err
			}
		}
		if msg.TaxRate != nil || msg.TipRate != nil {
			taxRate, tipRate := bill.TaxRate, bill.TipRate
			if msg.TaxRate != nil {
				taxRate = *msg.TaxRate
			}
			if msg.TipRate != nil {
				tipRate = *msg.TipRate
			}
			if bill, err = editor.SetRates(bill, taxRate, tipRate); err != nil {
				return bill, err
			}
		}
		if msg.Complete {
			bill = editor.Complete(bill)
		}
		return bill, nil
	})
}

// AddDiner adds a person to the bill.
func (s *BillService) AddDiner(ctx context.Context, req *connect.Request[api.AddDinerRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "AddDiner", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return s.editor.AddDiner(bill, req.Msg.Name)
	})
}

// RemoveDiner removes a person and their assignments.
func (s *BillService) RemoveDiner(ctx context.Context, req *connect.Request[api.RemoveDinerRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "RemoveDiner", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.RemoveDiner(bill, req.Msg.DinerID), nil
	})
}

func (s *BillService) RenameDiner(ctx context.Context, req *connect.Request[api.RenameDinerRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "RenameDiner", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.RenameDiner(bill, req.Msg.DinerID, req.Msg.Name)
	})
}

// AddItem appends an unassigned item.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.BillResponse], error) {
	slog.Debug("Adding item", "bill_id", req.Msg.BillID, "name", req.Msg.Name, "price", req.Msg.Price)
	return s.mutate(ctx, "AddItem", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return s.editor.AddItem(bill, req.Msg.Name, req.Msg.Price)
	})
}

func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "RemoveItem", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.RemoveItem(bill, req.Msg.ItemID), nil
	})
}

// AssignItem toggles a diner on an item.
func (s *BillService) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "AssignItem", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.AssignItem(bill, req.Msg.ItemID, req.Msg.DinerID), nil
	})
}

// UnassignItem clears every assignee of an item.
func (s *BillService) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "UnassignItem", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.UnassignAll(bill, req.Msg.ItemID), nil
	})
}

// SplitItem replaces an item with equal, unassigned portions.
func (s *BillService) SplitItem(ctx context.Context, req *connect.Request[api.SplitItemRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "SplitItem", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return s.editor.SplitItemEvenly(bill, req.Msg.ItemID, req.Msg.Parts)
	})
}

// SetItemSplit switches an item between equal, percentage and custom splits.
func (s *BillService) SetItemSplit(ctx context.Context, req *connect.Request[api.SetItemSplitRequest]) (*connect.Response[api.BillResponse], error) {
	return s.mutate(ctx, "SetItemSplit", req.Msg.BillID, func(bill models.Bill) (models.Bill, error) {
		return editor.SetItemSplit(bill, req.Msg.ItemID, req.Msg.SplitType, req.Msg.Amounts)
	})
}

// CalculateTotals computes per-diner totals. Totals are derived on every
// call and never stored.
func (s *BillService) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	mode, err := calculator.ParseRoundingMode(req.Msg.RoundingMode)
	if err != nil {
		return nil, toConnectError("CalculateTotals", err)
	}
	bill, err := s.loadBill(ctx, "CalculateTotals", req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	totals := calculator.ComputeTotals(bill, mode)
	summary := calculator.Summarize(bill, mode)
	for _, t := range totals {
		slog.Debug("Diner total",
			"diner", t.Name,
			"subtotal", t.Subtotal,
			"tax", t.TaxAmount,
			"tip", t.TipAmount,
			"total", t.Total,
			"rounded", t.RoundedTotal,
		)
	}

	return connect.NewResponse(&api.CalculateTotalsResponse{
		Totals:       totals,
		Summary:      summary,
		RoundingMode: mode.String(),
	}), nil
}

// ShareBill issues a read-only share token for the bill together with a
// text breakdown and a payment link for every diner who owes something.
func (s *BillService) ShareBill(ctx context.Context, req *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	mode, err := calculator.ParseRoundingMode(req.Msg.RoundingMode)
	if err != nil {
		return nil, toConnectError("ShareBill", err)
	}
	bill, err := s.loadBill(ctx, "ShareBill", req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(bill.ID)
	if err != nil {
		slog.Error("ShareBill failed to issue token", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	totals := calculator.ComputeTotals(bill, mode)
	links := make([]api.PaymentLink, 0, len(totals))
	for _, t := range totals {
		if t.RoundedTotal <= 0 {
			continue
		}
		url, err := share.PaymentLink(s.paymentBaseURL, t.Name, t.RoundedTotal)
		if err != nil {
			slog.Error("ShareBill failed to build payment link", "bill_id", bill.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		links = append(links, api.PaymentLink{
			DinerID: t.DinerID,
			Name:    t.Name,
			Amount:  t.RoundedTotal,
			URL:     url,
		})
	}

	slog.Info("Bill shared", "bill_id", bill.ID, "expires_at", expiresAt, "payment_links", len(links))
	return connect.NewResponse(&api.ShareBillResponse{
		Token:        token,
		ExpiresAt:    expiresAt,
		Message:      share.FormatBreakdown(bill, totals),
		PaymentLinks: links,
	}), nil
}

// GetSharedBill resolves a share token to the bill and its totals.
func (s *BillService) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	claims, err := s.tokens.Verify(req.Msg.Token)
	if err != nil {
		return nil, toConnectError("GetSharedBill", err)
	}
	mode, err := calculator.ParseRoundingMode(req.Msg.RoundingMode)
	if err != nil {
		return nil, toConnectError("GetSharedBill", err)
	}
	bill, err := s.loadBill(ctx, "GetSharedBill", claims.BillID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetSharedBillResponse{
		Bill:    bill,
		Totals:  calculator.ComputeTotals(bill, mode),
		Summary: calculator.Summarize(bill, mode),
	}), nil
}

// mutate applies fn to the stored bill and returns the saved result.
func (s *BillService) mutate(ctx context.Context, op, billID string, fn func(models.Bill) (models.Bill, error)) (*connect.Response[api.BillResponse], error) {
	if billID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errBillIDRequired)
	}

	bill, found, err := s.store.Update(ctx, billID, fn)
	if err != nil {
		return nil, toConnectError(op, err)
	}
	if !found {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("bill %s not found", billID))
	}

	slog.Info("Bill updated", "op", op, "bill_id", billID)
	return connect.NewResponse(&api.BillResponse{Bill: bill}), nil
}

// loadBill fetches a bill that must exist.
func (s *BillService) loadBill(ctx context.Context, op, billID string) (models.Bill, error) {
	if billID == "" {
		return models.Bill{}, connect.NewError(connect.CodeInvalidArgument, errBillIDRequired)
	}
	bill, found, err := s.store.Get(ctx, billID)
	if err != nil {
		return models.Bill{}, toConnectError(op, err)
	}
	if !found {
		return models.Bill{}, connect.NewError(connect.CodeNotFound, fmt.Errorf("bill %s not found", billID))
	}
	return bill, nil
}

// toConnectError maps domain errors onto Connect codes and logs them.
func toConnectError(op string, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		slog.Warn(op+" rejected", "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, share.ErrInvalidToken), errors.Is(err, share.ErrMissingToken):
		slog.Warn(op+" rejected", "error", err)
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, models.ErrStorage):
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
