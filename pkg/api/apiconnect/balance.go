package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "settleup.v1.BalanceService"

const (
	// BalanceServiceGetGroupBalancesProcedure is the fully-qualified name of the BalanceService's GetGroupBalances RPC.
	BalanceServiceGetGroupBalancesProcedure = "/settleup.v1.BalanceService/GetGroupBalances"
	// BalanceServiceSuggestSettlementsProcedure is the fully-qualified name of the BalanceService's SuggestSettlements RPC.
	BalanceServiceSuggestSettlementsProcedure = "/settleup.v1.BalanceService/SuggestSettlements"
	// BalanceServiceRecordSettlementProcedure is the fully-qualified name of the BalanceService's RecordSettlement RPC.
	BalanceServiceRecordSettlementProcedure = "/settleup.v1.BalanceService/RecordSettlement"
	// BalanceServiceListSettlementsProcedure is the fully-qualified name of the BalanceService's ListSettlements RPC.
	BalanceServiceListSettlementsProcedure = "/settleup.v1.BalanceService/ListSettlements"
	// BalanceServiceGetMemberBalanceProcedure is the fully-qualified name of the BalanceService's GetMemberBalance RPC.
	BalanceServiceGetMemberBalanceProcedure = "/settleup.v1.BalanceService/GetMemberBalance"
	// BalanceServiceGetOverallBalanceProcedure is the fully-qualified name of the BalanceService's GetOverallBalance RPC.
	BalanceServiceGetOverallBalanceProcedure = "/settleup.v1.BalanceService/GetOverallBalance"
	// BalanceServiceSimplifyBalancesProcedure is the fully-qualified name of the BalanceService's SimplifyBalances RPC.
	BalanceServiceSimplifyBalancesProcedure = "/settleup.v1.BalanceService/SimplifyBalances"
)

// BalanceServiceClient is a client for the settleup.v1.BalanceService service.
type BalanceServiceClient interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	SuggestSettlements(context.Context, *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetMemberBalance(context.Context, *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error)
	GetOverallBalance(context.Context, *connect.Request[api.GetOverallBalanceRequest]) (*connect.Response[api.GetOverallBalanceResponse], error)
	SimplifyBalances(context.Context, *connect.Request[api.SimplifyBalancesRequest]) (*connect.Response[api.SimplifyBalancesResponse], error)
}

// NewBalanceServiceClient constructs a client for the settleup.v1.BalanceService
// service. Requests use the JSON codec.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &balanceServiceClient{
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](
			httpClient, baseURL+BalanceServiceGetGroupBalancesProcedure, opts...),
		suggestSettlements: connect.NewClient[api.SuggestSettlementsRequest, api.SuggestSettlementsResponse](
			httpClient, baseURL+BalanceServiceSuggestSettlementsProcedure, opts...),
		recordSettlement: connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](
			httpClient, baseURL+BalanceServiceRecordSettlementProcedure, opts...),
		listSettlements: connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](
			httpClient, baseURL+BalanceServiceListSettlementsProcedure, opts...),
		getMemberBalance: connect.NewClient[api.GetMemberBalanceRequest, api.GetMemberBalanceResponse](
			httpClient, baseURL+BalanceServiceGetMemberBalanceProcedure, opts...),
		getOverallBalance: connect.NewClient[api.GetOverallBalanceRequest, api.GetOverallBalanceResponse](
			httpClient, baseURL+BalanceServiceGetOverallBalanceProcedure, opts...),
		simplifyBalances: connect.NewClient[api.SimplifyBalancesRequest, api.SimplifyBalancesResponse](
			httpClient, baseURL+BalanceServiceSimplifyBalancesProcedure, opts...),
	}
}

// balanceServiceClient implements BalanceServiceClient.
type balanceServiceClient struct {
	getGroupBalances   *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	suggestSettlements *connect.Client[api.SuggestSettlementsRequest, api.SuggestSettlementsResponse]
	recordSettlement   *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	listSettlements    *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	getMemberBalance   *connect.Client[api.GetMemberBalanceRequest, api.GetMemberBalanceResponse]
	getOverallBalance  *connect.Client[api.GetOverallBalanceRequest, api.GetOverallBalanceResponse]
	simplifyBalances   *connect.Client[api.SimplifyBalancesRequest, api.SimplifyBalancesResponse]
}

func (c *balanceServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	return c.suggestSettlements.CallUnary(ctx, req)
}

func (c *balanceServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *balanceServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetMemberBalance(ctx context.Context, req *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error) {
	return c.getMemberBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetOverallBalance(ctx context.Context, req *connect.Request[api.GetOverallBalanceRequest]) (*connect.Response[api.GetOverallBalanceResponse], error) {
	return c.getOverallBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) SimplifyBalances(ctx context.Context, req *connect.Request[api.SimplifyBalancesRequest]) (*connect.Response[api.SimplifyBalancesResponse], error) {
	return c.simplifyBalances.CallUnary(ctx, req)
}

// BalanceServiceHandler is an implementation of the settleup.v1.BalanceService service.
type BalanceServiceHandler interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	SuggestSettlements(context.Context, *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetMemberBalance(context.Context, *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error)
	GetOverallBalance(context.Context, *connect.Request[api.GetOverallBalanceRequest]) (*connect.Response[api.GetOverallBalanceResponse], error)
	SimplifyBalances(context.Context, *connect.Request[api.SimplifyBalancesRequest]) (*connect.Response[api.SimplifyBalancesResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	getGroupBalancesHandler := connect.NewUnaryHandler(BalanceServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...)
	suggestSettlementsHandler := connect.NewUnaryHandler(BalanceServiceSuggestSettlementsProcedure, svc.SuggestSettlements, opts...)
	recordSettlementHandler := connect.NewUnaryHandler(BalanceServiceRecordSettlementProcedure, svc.RecordSettlement, opts...)
	listSettlementsHandler := connect.NewUnaryHandler(BalanceServiceListSettlementsProcedure, svc.ListSettlements, opts...)
	getMemberBalanceHandler := connect.NewUnaryHandler(BalanceServiceGetMemberBalanceProcedure, svc.GetMemberBalance, opts...)
	getOverallBalanceHandler := connect.NewUnaryHandler(BalanceServiceGetOverallBalanceProcedure, svc.GetOverallBalance, opts...)
	simplifyBalancesHandler := connect.NewUnaryHandler(BalanceServiceSimplifyBalancesProcedure, svc.SimplifyBalances, opts...)
	return "/settleup.v1.BalanceService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BalanceServiceGetGroupBalancesProcedure:
			getGroupBalancesHandler.ServeHTTP(w, r)
		case BalanceServiceSuggestSettlementsProcedure:
			suggestSettlementsHandler.ServeHTTP(w, r)
		case BalanceServiceRecordSettlementProcedure:
			recordSettlementHandler.ServeHTTP(w, r)
		case BalanceServiceListSettlementsProcedure:
			listSettlementsHandler.ServeHTTP(w, r)
		case BalanceServiceGetMemberBalanceProcedure:
			getMemberBalanceHandler.ServeHTTP(w, r)
		case BalanceServiceGetOverallBalanceProcedure:
			getOverallBalanceHandler.ServeHTTP(w, r)
		case BalanceServiceSimplifyBalancesProcedure:
			simplifyBalancesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.GetGroupBalances is not implemented"))
}

func (UnimplementedBalanceServiceHandler) SuggestSettlements(context.Context, *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.SuggestSettlements is not implemented"))
}

func (UnimplementedBalanceServiceHandler) RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.RecordSettlement is not implemented"))
}

func (UnimplementedBalanceServiceHandler) ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.ListSettlements is not implemented"))
}

func (UnimplementedBalanceServiceHandler) GetMemberBalance(context.Context, *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.GetMemberBalance is not implemented"))
}

func (UnimplementedBalanceServiceHandler) GetOverallBalance(context.Context, *connect.Request[api.GetOverallBalanceRequest]) (*connect.Response[api.GetOverallBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.GetOverallBalance is not implemented"))
}

func (UnimplementedBalanceServiceHandler) SimplifyBalances(context.Context, *connect.Request[api.SimplifyBalancesRequest]) (*connect.Response[api.SimplifyBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.BalanceService.SimplifyBalances is not implemented"))
}
