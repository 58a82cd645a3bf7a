package service

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/editor"
	"github.com/mmynk/dinesplit/internal/ids"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/share"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/storage/sqlite"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (api.BillServiceClient, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	kv, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	store := storage.NewBillStore(kv)

	svc := NewBillService(
		store,
		editor.New(ids.NewSequence("t")),
		share.NewTokenManager("test-secret", time.Hour),
		"https://pay.test/pay",
	)
	path, handler := api.NewBillServiceHandler(svc, connect.WithInterceptors(middleware.LoggingInterceptor()))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := api.NewBillServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return client, cleanup
}

func createBill(t *testing.T, client api.BillServiceClient, name string, taxRate, tipRate float64) models.Bill {
	t.Helper()
	resp, err := client.CreateBill(context.Background(), connect.NewRequest(&api.CreateBillRequest{
		Name:    name,
		TaxRate: taxRate,
		TipRate: tipRate,
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	return resp.Msg.Bill
}

func addDiner(t *testing.T, client api.BillServiceClient, billID, name string) models.Bill {
	t.Helper()
	resp, err := client.AddDiner(context.Background(), connect.NewRequest(&api.AddDinerRequest{BillID: billID, Name: name}))
	if err != nil {
		t.Fatalf("AddDiner(%s) failed: %v", name, err)
	}
	return resp.Msg.Bill
}

func addItem(t *testing.T, client api.BillServiceClient, billID, name string, price float64) models.Bill {
	t.Helper()
	resp, err := client.AddItem(context.Background(), connect.NewRequest(&api.AddItemRequest{BillID: billID, Name: name, Price: price}))
	if err != nil {
		t.Fatalf("AddItem(%s) failed: %v", name, err)
	}
	return resp.Msg.Bill
}

func assign(t *testing.T, client api.BillServiceClient, billID, itemID, dinerID string) models.Bill {
	t.Helper()
	resp, err := client.AssignItem(context.Background(), connect.NewRequest(&api.AssignItemRequest{
		BillID: billID, ItemID: itemID, DinerID: dinerID,
	}))
	if err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	return resp.Msg.Bill
}

// dinnerForTwo builds Alice and Bob with a steak for Alice and a shared salad.
func dinnerForTwo(t *testing.T, client api.BillServiceClient) models.Bill {
	t.Helper()
	bill := createBill(t, client, "Dinner for two", 0.08, 0.18)
	bill = addDiner(t, client, bill.ID, "Alice")
	bill = addDiner(t, client, bill.ID, "Bob")
	alice, bob := bill.Diners[0].ID, bill.Diners[1].ID

	bill = addItem(t, client, bill.ID, "Steak", 20)
	bill = addItem(t, client, bill.ID, "Salad", 10)
	steak, salad := bill.Items[0].ID, bill.Items[1].ID

	assign(t, client, bill.ID, steak, alice)
	assign(t, client, bill.ID, salad, alice)
	return assign(t, client, bill.ID, salad, bob)
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}

func TestCreateAndGetBill(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	created := createBill(t, client, "  Sushi night ", 0.1, 0.2)
	if created.ID == "" {
		t.Fatal("expected bill ID")
	}
	if created.Name != "Sushi night" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.Status != models.BillStatusActive {
		t.Errorf("expected active status, got %q", created.Status)
	}

	resp, err := client.GetBill(context.Background(), connect.NewRequest(&api.GetBillRequest{BillID: created.ID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !resp.Msg.Found || resp.Msg.Bill == nil {
		t.Fatal("expected bill to be found")
	}
	if resp.Msg.Bill.TaxRate != 0.1 || resp.Msg.Bill.TipRate != 0.2 {
		t.Errorf("rates not persisted: %+v", resp.Msg.Bill)
	}
}

func TestCreateBill_DefaultName(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	bill := createBill(t, client, "", 0, 0)
	if !strings.HasPrefix(bill.Name, "Bill - ") {
		t.Errorf("expected default title, got %q", bill.Name)
	}
}

func TestCreateBill_NegativeRate(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.CreateBill(context.Background(), connect.NewRequest(&api.CreateBillRequest{Name: "x", TaxRate: -0.1}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetBill_NotFound(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.GetBill(context.Background(), connect.NewRequest(&api.GetBillRequest{BillID: "missing"}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if resp.Msg.Found {
		t.Error("expected Found=false for missing bill")
	}

	_, err = client.GetBill(context.Background(), connect.NewRequest(&api.GetBillRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListAndDeleteBills(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	first := createBill(t, client, "First", 0, 0)
	createBill(t, client, "Second", 0, 0)

	list, err := client.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(list.Msg.Bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(list.Msg.Bills))
	}
	if list.Msg.Bills[0].Name != "First" || list.Msg.Bills[1].Name != "Second" {
		t.Errorf("unexpected order: %s, %s", list.Msg.Bills[0].Name, list.Msg.Bills[1].Name)
	}

	// Deleting twice succeeds both times.
	for i := 0; i < 2; i++ {
		if _, err := client.DeleteBill(ctx, connect.NewRequest(&api.DeleteBillRequest{BillID: first.ID})); err != nil {
			t.Fatalf("DeleteBill #%d failed: %v", i+1, err)
		}
	}

	list, err = client.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(list.Msg.Bills) != 1 || list.Msg.Bills[0].Name != "Second" {
		t.Errorf("expected only Second to remain, got %+v", list.Msg.Bills)
	}
}

func TestUpdateBill(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	bill := createBill(t, client, "Old", 0.05, 0.1)
	name := "New"
	tip := 0.2

	resp, err := client.UpdateBill(ctx, connect.NewRequest(&api.UpdateBillRequest{
		BillID:   bill.ID,
		Name:     &name,
		TipRate:  &tip,
		Complete: true,
	}))
	if err != nil {
		t.Fatalf("UpdateBill failed: %v", err)
	}
	got := resp.Msg.Bill
	if got.Name != "New" {
		t.Errorf("expected name New, got %q", got.Name)
	}
	if got.TaxRate != 0.05 || got.TipRate != 0.2 {
		t.Errorf("expected tax kept and tip changed, got %v / %v", got.TaxRate, got.TipRate)
	}
	if got.Status != models.BillStatusCompleted {
		t.Errorf("expected completed, got %q", got.Status)
	}

	blank := "  "
	_, err = client.UpdateBill(ctx, connect.NewRequest(&api.UpdateBillRequest{BillID: bill.ID, Name: &blank}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = client.UpdateBill(ctx, connect.NewRequest(&api.UpdateBillRequest{BillID: "missing", Name: &name}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestCalculateTotals_EndToEnd(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	bill := dinnerForTwo(t, client)

	resp, err := client.CalculateTotals(context.Background(), connect.NewRequest(&api.CalculateTotalsRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("CalculateTotals failed: %v", err)
	}

	tests := []struct {
		name                  string
		subtotal, tax, tip, t float64
	}{
		{"Alice", 25, 2.00, 4.50, 31.50},
		{"Bob", 5, 0.40, 0.90, 6.30},
	}
	if len(resp.Msg.Totals) != len(tests) {
		t.Fatalf("expected %d totals, got %d", len(tests), len(resp.Msg.Totals))
	}
	var sum float64
	for i, tt := range tests {
		got := resp.Msg.Totals[i]
		if got.Name != tt.name {
			t.Errorf("totals[%d] name = %s, want %s", i, got.Name, tt.name)
		}
		if math.Abs(got.Subtotal-tt.subtotal) > 1e-9 ||
			math.Abs(got.TaxAmount-tt.tax) > 1e-9 ||
			math.Abs(got.TipAmount-tt.tip) > 1e-9 ||
			math.Abs(got.Total-tt.t) > 1e-9 {
			t.Errorf("%s: got %+v", tt.name, got)
		}
		sum += got.Total
	}
	if math.Abs(sum-37.80) > 1e-9 {
		t.Errorf("expected sum 37.80, got %f", sum)
	}
	if math.Abs(resp.Msg.Summary.GrandTotal-37.80) > 1e-9 {
		t.Errorf("expected grand total 37.80, got %f", resp.Msg.Summary.GrandTotal)
	}
	if resp.Msg.RoundingMode != "none" {
		t.Errorf("expected rounding mode none, got %q", resp.Msg.RoundingMode)
	}
}

func TestCalculateTotals_Rounding(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	bill := dinnerForTwo(t, client)
	tests := []struct {
		mode      string
		alice     float64
		bob       float64
		wantDelta float64
	}{
		{"up", 32, 7, 1.2},
		{"down", 31, 6, -0.8},
		{"nearest", 32, 6, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			resp, err := client.CalculateTotals(context.Background(), connect.NewRequest(&api.CalculateTotalsRequest{
				BillID:       bill.ID,
				RoundingMode: tt.mode,
			}))
			if err != nil {
				t.Fatalf("CalculateTotals failed: %v", err)
			}
			if resp.Msg.Totals[0].RoundedTotal != tt.alice || resp.Msg.Totals[1].RoundedTotal != tt.bob {
				t.Errorf("rounded totals = %v, %v; want %v, %v",
					resp.Msg.Totals[0].RoundedTotal, resp.Msg.Totals[1].RoundedTotal, tt.alice, tt.bob)
			}
			if math.Abs(resp.Msg.Summary.RoundingDelta-tt.wantDelta) > 1e-9 {
				t.Errorf("rounding delta = %v, want %v", resp.Msg.Summary.RoundingDelta, tt.wantDelta)
			}
		})
	}

	_, err := client.CalculateTotals(context.Background(), connect.NewRequest(&api.CalculateTotalsRequest{
		BillID:       bill.ID,
		RoundingMode: "sideways",
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = client.CalculateTotals(context.Background(), connect.NewRequest(&api.CalculateTotalsRequest{BillID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestItemOperations(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	bill := dinnerForTwo(t, client)
	alice, bob := bill.Diners[0].ID, bill.Diners[1].ID
	steak, salad := bill.Items[0].ID, bill.Items[1].ID

	t.Run("add item validation", func(t *testing.T) {
		_, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{BillID: bill.ID, Name: "Free", Price: 0}))
		assertCode(t, err, connect.CodeInvalidArgument)
		_, err = client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{BillID: bill.ID, Name: " ", Price: 3}))
		assertCode(t, err, connect.CodeInvalidArgument)
		_, err = client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{BillID: "missing", Name: "Soup", Price: 3}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("custom split", func(t *testing.T) {
		resp, err := client.SetItemSplit(ctx, connect.NewRequest(&api.SetItemSplitRequest{
			BillID:    bill.ID,
			ItemID:    salad,
			SplitType: models.SplitCustom,
			Amounts:   map[string]float64{alice: 7, bob: 3},
		}))
		if err != nil {
			t.Fatalf("SetItemSplit failed: %v", err)
		}
		if resp.Msg.Bill.Items[1].SplitType != models.SplitCustom {
			t.Errorf("expected custom split, got %q", resp.Msg.Bill.Items[1].SplitType)
		}

		totals, err := client.CalculateTotals(ctx, connect.NewRequest(&api.CalculateTotalsRequest{BillID: bill.ID}))
		if err != nil {
			t.Fatalf("CalculateTotals failed: %v", err)
		}
		if math.Abs(totals.Msg.Totals[0].Subtotal-27) > 1e-9 || math.Abs(totals.Msg.Totals[1].Subtotal-3) > 1e-9 {
			t.Errorf("unexpected subtotals %v / %v", totals.Msg.Totals[0].Subtotal, totals.Msg.Totals[1].Subtotal)
		}

		_, err = client.SetItemSplit(ctx, connect.NewRequest(&api.SetItemSplitRequest{
			BillID:    bill.ID,
			ItemID:    salad,
			SplitType: models.SplitPercentage,
			Amounts:   map[string]float64{alice: 70, bob: 20},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("split evenly", func(t *testing.T) {
		resp, err := client.SplitItem(ctx, connect.NewRequest(&api.SplitItemRequest{BillID: bill.ID, ItemID: steak, Parts: 4}))
		if err != nil {
			t.Fatalf("SplitItem failed: %v", err)
		}
		items := resp.Msg.Bill.Items
		if len(items) != 5 {
			t.Fatalf("expected 5 items, got %d", len(items))
		}
		var total float64
		for _, it := range items[:4] {
			if it.Price != 5 {
				t.Errorf("expected portion price 5, got %v", it.Price)
			}
			if len(it.AssignedTo) != 0 {
				t.Errorf("expected portion unassigned, got %v", it.AssignedTo)
			}
			total += it.Price
		}
		if total != 20 {
			t.Errorf("expected portions to sum to 20, got %v", total)
		}
		if items[0].Name != "Steak (1/4)" {
			t.Errorf("unexpected portion name %q", items[0].Name)
		}

		_, err = client.SplitItem(ctx, connect.NewRequest(&api.SplitItemRequest{BillID: bill.ID, ItemID: salad, Parts: 1}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("unassign and remove", func(t *testing.T) {
		resp, err := client.UnassignItem(ctx, connect.NewRequest(&api.UnassignItemRequest{BillID: bill.ID, ItemID: salad}))
		if err != nil {
			t.Fatalf("UnassignItem failed: %v", err)
		}
		idx := resp.Msg.Bill.FindItem(salad)
		if len(resp.Msg.Bill.Items[idx].AssignedTo) != 0 {
			t.Errorf("expected salad unassigned, got %v", resp.Msg.Bill.Items[idx].AssignedTo)
		}

		resp, err = client.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{BillID: bill.ID, ItemID: salad}))
		if err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if resp.Msg.Bill.FindItem(salad) >= 0 {
			t.Error("expected salad to be removed")
		}
	})
}

func TestDinerOperations(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	bill := dinnerForTwo(t, client)
	alice, bob := bill.Diners[0].ID, bill.Diners[1].ID

	resp, err := client.RenameDiner(ctx, connect.NewRequest(&api.RenameDinerRequest{BillID: bill.ID, DinerID: bob, Name: "Robert"}))
	if err != nil {
		t.Fatalf("RenameDiner failed: %v", err)
	}
	if resp.Msg.Bill.Diners[1].Name != "Robert" {
		t.Errorf("expected Robert, got %q", resp.Msg.Bill.Diners[1].Name)
	}

	resp, err = client.RemoveDiner(ctx, connect.NewRequest(&api.RemoveDinerRequest{BillID: bill.ID, DinerID: alice}))
	if err != nil {
		t.Fatalf("RemoveDiner failed: %v", err)
	}
	if resp.Msg.Bill.FindDiner(alice) >= 0 {
		t.Error("expected Alice to be removed")
	}
	for _, it := range resp.Msg.Bill.Items {
		if it.AssignedTo.Contains(alice) {
			t.Errorf("item %s still assigned to removed diner", it.Name)
		}
	}

	_, err = client.AddDiner(ctx, connect.NewRequest(&api.AddDinerRequest{BillID: bill.ID, Name: ""}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestShareBill(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	bill := dinnerForTwo(t, client)
	// Carol has nothing assigned and gets no payment link.
	bill = addDiner(t, client, bill.ID, "Carol")

	resp, err := client.ShareBill(ctx, connect.NewRequest(&api.ShareBillRequest{BillID: bill.ID, RoundingMode: "up"}))
	if err != nil {
		t.Fatalf("ShareBill failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected share token")
	}
	if !strings.HasPrefix(resp.Msg.Message, "💰 Dinner for two Bill Split") {
		t.Errorf("unexpected message: %q", resp.Msg.Message)
	}
	if !strings.Contains(resp.Msg.Message, "Alice: $32.00") {
		t.Errorf("expected Alice's rounded total in message: %q", resp.Msg.Message)
	}
	if len(resp.Msg.PaymentLinks) != 2 {
		t.Fatalf("expected 2 payment links, got %d", len(resp.Msg.PaymentLinks))
	}
	if want := "https://pay.test/pay?amount=32.00&recipient=Alice"; resp.Msg.PaymentLinks[0].URL != want {
		t.Errorf("payment link = %s, want %s", resp.Msg.PaymentLinks[0].URL, want)
	}

	shared, err := client.GetSharedBill(ctx, connect.NewRequest(&api.GetSharedBillRequest{Token: resp.Msg.Token}))
	if err != nil {
		t.Fatalf("GetSharedBill failed: %v", err)
	}
	if shared.Msg.Bill.ID != bill.ID {
		t.Errorf("shared bill = %s, want %s", shared.Msg.Bill.ID, bill.ID)
	}
	if len(shared.Msg.Totals) != 3 {
		t.Errorf("expected 3 totals, got %d", len(shared.Msg.Totals))
	}

	_, err = client.GetSharedBill(ctx, connect.NewRequest(&api.GetSharedBillRequest{Token: "bogus"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = client.ShareBill(ctx, connect.NewRequest(&api.ShareBillRequest{BillID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestSharedBillDeleted(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	bill := createBill(t, client, "Gone soon", 0, 0)
	resp, err := client.ShareBill(ctx, connect.NewRequest(&api.ShareBillRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("ShareBill failed: %v", err)
	}
	if _, err := client.DeleteBill(ctx, connect.NewRequest(&api.DeleteBillRequest{BillID: bill.ID})); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}

	_, err = client.GetSharedBill(ctx, connect.NewRequest(&api.GetSharedBillRequest{Token: resp.Msg.Token}))
	assertCode(t, err, connect.CodeNotFound)
}
