// Package api defines the BillService RPC contract: its messages, procedure
// names, and Connect handler and client constructors.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "dinesplit.v1.BillService"

// Procedure names, in the form "/<service>/<method>".
const (
	BillServiceCreateBillProcedure      = "/dinesplit.v1.BillService/CreateBill"
	BillServiceGetBillProcedure         = "/dinesplit.v1.BillService/GetBill"
	BillServiceListBillsProcedure       = "/dinesplit.v1.BillService/ListBills"
	BillServiceDeleteBillProcedure      = "/dinesplit.v1.BillService/DeleteBill"
	BillServiceUpdateBillProcedure      = "/dinesplit.v1.BillService/UpdateBill"
	BillServiceAddDinerProcedure        = "/dinesplit.v1.BillService/AddDiner"
	BillServiceRemoveDinerProcedure     = "/dinesplit.v1.BillService/RemoveDiner"
	BillServiceRenameDinerProcedure     = "/dinesplit.v1.BillService/RenameDiner"
	BillServiceAddItemProcedure         = "/dinesplit.v1.BillService/AddItem"
	BillServiceRemoveItemProcedure      = "/dinesplit.v1.BillService/RemoveItem"
	BillServiceAssignItemProcedure      = "/dinesplit.v1.BillService/AssignItem"
	BillServiceUnassignItemProcedure    = "/dinesplit.v1.BillService/UnassignItem"
	BillServiceSplitItemProcedure       = "/dinesplit.v1.BillService/SplitItem"
	BillServiceSetItemSplitProcedure    = "/dinesplit.v1.BillService/SetItemSplit"
	BillServiceCalculateTotalsProcedure = "/dinesplit.v1.BillService/CalculateTotals"
	BillServiceShareBillProcedure       = "/dinesplit.v1.BillService/ShareBill"
	BillServiceGetSharedBillProcedure   = "/dinesplit.v1.BillService/GetSharedBill"
)

// BillServiceHandler is implemented by the server.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error)
	UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[BillResponse], error)
	AddDiner(context.Context, *connect.Request[AddDinerRequest]) (*connect.Response[BillResponse], error)
	RemoveDiner(context.Context, *connect.Request[RemoveDinerRequest]) (*connect.Response[BillResponse], error)
	RenameDiner(context.Context, *connect.Request[RenameDinerRequest]) (*connect.Response[BillResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error)
	AssignItem(context.Context, *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error)
	UnassignItem(context.Context, *connect.Request[UnassignItemRequest]) (*connect.Response[BillResponse], error)
	SplitItem(context.Context, *connect.Request[SplitItemRequest]) (*connect.Response[BillResponse], error)
	SetItemSplit(context.Context, *connect.Request[SetItemSplitRequest]) (*connect.Response[BillResponse], error)
	CalculateTotals(context.Context, *connect.Request[CalculateTotalsRequest]) (*connect.Response[CalculateTotalsResponse], error)
	ShareBill(context.Context, *connect.Request[ShareBillRequest]) (*connect.Response[ShareBillResponse], error)
	GetSharedBill(context.Context, *connect.Request[GetSharedBillRequest]) (*connect.Response[GetSharedBillResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	handlers := map[string]http.Handler{
		BillServiceCreateBillProcedure:      connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...),
		BillServiceGetBillProcedure:         connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...),
		BillServiceListBillsProcedure:       connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...),
		BillServiceDeleteBillProcedure:      connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...),
		BillServiceUpdateBillProcedure:      connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...),
		BillServiceAddDinerProcedure:        connect.NewUnaryHandler(BillServiceAddDinerProcedure, svc.AddDiner, opts...),
		BillServiceRemoveDinerProcedure:     connect.NewUnaryHandler(BillServiceRemoveDinerProcedure, svc.RemoveDiner, opts...),
		BillServiceRenameDinerProcedure:     connect.NewUnaryHandler(BillServiceRenameDinerProcedure, svc.RenameDiner, opts...),
		BillServiceAddItemProcedure:         connect.NewUnaryHandler(BillServiceAddItemProcedure, svc.AddItem, opts...),
		BillServiceRemoveItemProcedure:      connect.NewUnaryHandler(BillServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		BillServiceAssignItemProcedure:      connect.NewUnaryHandler(BillServiceAssignItemProcedure, svc.AssignItem, opts...),
		BillServiceUnassignItemProcedure:    connect.NewUnaryHandler(BillServiceUnassignItemProcedure, svc.UnassignItem, opts...),
		BillServiceSplitItemProcedure:       connect.NewUnaryHandler(BillServiceSplitItemProcedure, svc.SplitItem, opts...),
		BillServiceSetItemSplitProcedure:    connect.NewUnaryHandler(BillServiceSetItemSplitProcedure, svc.SetItemSplit, opts...),
		BillServiceCalculateTotalsProcedure: connect.NewUnaryHandler(BillServiceCalculateTotalsProcedure, svc.CalculateTotals, opts...),
		BillServiceShareBillProcedure:       connect.NewUnaryHandler(BillServiceShareBillProcedure, svc.ShareBill, opts...),
		BillServiceGetSharedBillProcedure:   connect.NewUnaryHandler(BillServiceGetSharedBillProcedure, svc.GetSharedBill, opts...),
	}
	return "/" + BillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// BillServiceClient is a client for the BillService.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error)
	UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[BillResponse], error)
	AddDiner(context.Context, *connect.Request[AddDinerRequest]) (*connect.Response[BillResponse], error)
	RemoveDiner(context.Context, *connect.Request[RemoveDinerRequest]) (*connect.Response[BillResponse], error)
	RenameDiner(context.Context, *connect.Request[RenameDinerRequest]) (*connect.Response[BillResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error)
	AssignItem(context.Context, *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error)
	UnassignItem(context.Context, *connect.Request[UnassignItemRequest]) (*connect.Response[BillResponse], error)
	SplitItem(context.Context, *connect.Request[SplitItemRequest]) (*connect.Response[BillResponse], error)
	SetItemSplit(context.Context, *connect.Request[SetItemSplitRequest]) (*connect.Response[BillResponse], error)
	CalculateTotals(context.Context, *connect.Request[CalculateTotalsRequest]) (*connect.Response[CalculateTotalsResponse], error)
	ShareBill(context.Context, *connect.Request[ShareBillRequest]) (*connect.Response[ShareBillResponse], error)
	GetSharedBill(context.Context, *connect.Request[GetSharedBillRequest]) (*connect.Response[GetSharedBillResponse], error)
}

// NewBillServiceClient constructs a client for the BillService at baseURL
// (e.g. "http://localhost:8080").
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &billServiceClient{
		createBill:      connect.NewClient[CreateBillRequest, BillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:         connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		listBills:       connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		deleteBill:      connect.NewClient[DeleteBillRequest, DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		updateBill:      connect.NewClient[UpdateBillRequest, BillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		addDiner:        connect.NewClient[AddDinerRequest, BillResponse](httpClient, baseURL+BillServiceAddDinerProcedure, opts...),
		removeDiner:     connect.NewClient[RemoveDinerRequest, BillResponse](httpClient, baseURL+BillServiceRemoveDinerProcedure, opts...),
		renameDiner:     connect.NewClient[RenameDinerRequest, BillResponse](httpClient, baseURL+BillServiceRenameDinerProcedure, opts...),
		addItem:         connect.NewClient[AddItemRequest, BillResponse](httpClient, baseURL+BillServiceAddItemProcedure, opts...),
		removeItem:      connect.NewClient[RemoveItemRequest, BillResponse](httpClient, baseURL+BillServiceRemoveItemProcedure, opts...),
		assignItem:      connect.NewClient[AssignItemRequest, BillResponse](httpClient, baseURL+BillServiceAssignItemProcedure, opts...),
		unassignItem:    connect.NewClient[UnassignItemRequest, BillResponse](httpClient, baseURL+BillServiceUnassignItemProcedure, opts...),
		splitItem:       connect.NewClient[SplitItemRequest, BillResponse](httpClient, baseURL+BillServiceSplitItemProcedure, opts...),
		setItemSplit:    connect.NewClient[SetItemSplitRequest, BillResponse](httpClient, baseURL+BillServiceSetItemSplitProcedure, opts...),
		calculateTotals: connect.NewClient[CalculateTotalsRequest, CalculateTotalsResponse](httpClient, baseURL+BillServiceCalculateTotalsProcedure, opts...),
		shareBill:       connect.NewClient[ShareBillRequest, ShareBillResponse](httpClient, baseURL+BillServiceShareBillProcedure, opts...),
		getSharedBill:   connect.NewClient[GetSharedBillRequest, GetSharedBillResponse](httpClient, baseURL+BillServiceGetSharedBillProcedure, opts...),
	}
}

type billServiceClient struct {
	createBill      *connect.Client[CreateBillRequest, BillResponse]
	getBill         *connect.Client[GetBillRequest, GetBillResponse]
	listBills       *connect.Client[ListBillsRequest, ListBillsResponse]
	deleteBill      *connect.Client[DeleteBillRequest, DeleteBillResponse]
	updateBill      *connect.Client[UpdateBillRequest, BillResponse]
	addDiner        *connect.Client[AddDinerRequest, BillResponse]
	removeDiner     *connect.Client[RemoveDinerRequest, BillResponse]
	renameDiner     *connect.Client[RenameDinerRequest, BillResponse]
	addItem         *connect.Client[AddItemRequest, BillResponse]
	removeItem      *connect.Client[RemoveItemRequest, BillResponse]
	assignItem      *connect.Client[AssignItemRequest, BillResponse]
	unassignItem    *connect.Client[UnassignItemRequest, BillResponse]
	splitItem       *connect.Client[SplitItemRequest, BillResponse]
	setItemSplit    *connect.Client[SetItemSplitRequest, BillResponse]
	calculateTotals *connect.Client[CalculateTotalsRequest, CalculateTotalsResponse]
	shareBill       *connect.Client[ShareBillRequest, ShareBillResponse]
	getSharedBill   *connect.Client[GetSharedBillRequest, GetSharedBillResponse]
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[BillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AddDiner(ctx context.Context, req *connect.Request[AddDinerRequest]) (*connect.Response[BillResponse], error) {
	return c.addDiner.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveDiner(ctx context.Context, req *connect.Request[RemoveDinerRequest]) (*connect.Response[BillResponse], error) {
	return c.removeDiner.CallUnary(ctx, req)
}

func (c *billServiceClient) RenameDiner(ctx context.Context, req *connect.Request[RenameDinerRequest]) (*connect.Response[BillResponse], error) {
	return c.renameDiner.CallUnary(ctx, req)
}

func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *billServiceClient) AssignItem(ctx context.Context, req *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

func (c *billServiceClient) UnassignItem(ctx context.Context, req *connect.Request[UnassignItemRequest]) (*connect.Response[BillResponse], error) {
	return c.unassignItem.CallUnary(ctx, req)
}

func (c *billServiceClient) SplitItem(ctx context.Context, req *connect.Request[SplitItemRequest]) (*connect.Response[BillResponse], error) {
	return c.splitItem.CallUnary(ctx, req)
}

func (c *billServiceClient) SetItemSplit(ctx context.Context, req *connect.Request[SetItemSplitRequest]) (*connect.Response[BillResponse], error) {
	return c.setItemSplit.CallUnary(ctx, req)
}

func (c *billServiceClient) CalculateTotals(ctx context.Context, req *connect.Request[CalculateTotalsRequest]) (*connect.Response[CalculateTotalsResponse], error) {
	return c.calculateTotals.CallUnary(ctx, req)
}

func (c *billServiceClient) ShareBill(ctx context.Context, req *connect.Request[ShareBillRequest]) (*connect.Response[ShareBillResponse], error) {
	return c.shareBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSharedBill(ctx context.Context, req *connect.Request[GetSharedBillRequest]) (*connect.Response[GetSharedBillResponse], error) {
	return c.getSharedBill.CallUnary(ctx, req)
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func unimplemented(procedure string) error {
	method := strings.TrimPrefix(procedure, "/"+BillServiceName+"/")
	return connect.NewError(connect.CodeUnimplemented, fmt.Errorf("%s.%s is not implemented", BillServiceName, method))
}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceCreateBillProcedure)
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return nil, unimplemented(BillServiceGetBillProcedure)
}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return nil, unimplemented(BillServiceListBillsProcedure)
}

func (UnimplementedBillServiceHandler) DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return nil, unimplemented(BillServiceDeleteBillProcedure)
}

func (UnimplementedBillServiceHandler) UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceUpdateBillProcedure)
}

func (UnimplementedBillServiceHandler) AddDiner(context.Context, *connect.Request[AddDinerRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceAddDinerProcedure)
}

func (UnimplementedBillServiceHandler) RemoveDiner(context.Context, *connect.Request[RemoveDinerRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceRemoveDinerProcedure)
}

func (UnimplementedBillServiceHandler) RenameDiner(context.Context, *connect.Request[RenameDinerRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceRenameDinerProcedure)
}

func (UnimplementedBillServiceHandler) AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceAddItemProcedure)
}

func (UnimplementedBillServiceHandler) RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceRemoveItemProcedure)
}

func (UnimplementedBillServiceHandler) AssignItem(context.Context, *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceAssignItemProcedure)
}

func (UnimplementedBillServiceHandler) UnassignItem(context.Context, *connect.Request[UnassignItemRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceUnassignItemProcedure)
}

func (UnimplementedBillServiceHandler) SplitItem(context.Context, *connect.Request[SplitItemRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceSplitItemProcedure)
}

func (UnimplementedBillServiceHandler) SetItemSplit(context.Context, *connect.Request[SetItemSplitRequest]) (*connect.Response[BillResponse], error) {
	return nil, unimplemented(BillServiceSetItemSplitProcedure)
}

func (UnimplementedBillServiceHandler) CalculateTotals(context.Context, *connect.Request[CalculateTotalsRequest]) (*connect.Response[CalculateTotalsResponse], error) {
	return nil, unimplemented(BillServiceCalculateTotalsProcedure)
}

func (UnimplementedBillServiceHandler) ShareBill(context.Context, *connect.Request[ShareBillRequest]) (*connect.Response[ShareBillResponse], error) {
	return nil, unimplemented(BillServiceShareBillProcedure)
}

func (UnimplementedBillServiceHandler) GetSharedBill(context.Context, *connect.Request[GetSharedBillRequest]) (*connect.Response[GetSharedBillResponse], error) {
	return nil, unimplemented(BillServiceGetSharedBillProcedure)
}
