package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/pkg/api"
)

type MessServiceClient interface {
	CreateMess(context.Context, *connect.Request[api.CreateMessRequest]) (*connect.Response[api.CreateMessResponse], error)
	JoinMess(context.Context, *connect.Request[api.JoinMessRequest]) (*connect.Response[api.JoinMessResponse], error)
	GetCurrentMess(context.Context, *connect.Request[api.GetCurrentMessRequest]) (*connect.Response[api.GetCurrentMessResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewMessServiceClient builds a client for the MessService at baseURL.
func NewMessServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MessServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &messServiceClient{
		createMess:     connect.NewClient[api.CreateMessRequest, api.CreateMessResponse](httpClient, baseURL+MessServiceCreateMessProcedure, opts...),
		joinMess:       connect.NewClient[api.JoinMessRequest, api.JoinMessResponse](httpClient, baseURL+MessServiceJoinMessProcedure, opts...),
		getCurrentMess: connect.NewClient[api.GetCurrentMessRequest, api.GetCurrentMessResponse](httpClient, baseURL+MessServiceGetCurrentMessProcedure, opts...),
		removeMember:   connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+MessServiceRemoveMemberProcedure, opts...),
	}
}

type messServiceClient struct {
	createMess     *connect.Client[api.CreateMessRequest, api.CreateMessResponse]
	joinMess       *connect.Client[api.JoinMessRequest, api.JoinMessResponse]
	getCurrentMess *connect.Client[api.GetCurrentMessRequest, api.GetCurrentMessResponse]
	removeMember   *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

func (c *messServiceClient) CreateMess(ctx context.Context, req *connect.Request[api.CreateMessRequest]) (*connect.Response[api.CreateMessResponse], error) {
	return c.createMess.CallUnary(ctx, req)
}

func (c *messServiceClient) JoinMess(ctx context.Context, req *connect.Request[api.JoinMessRequest]) (*connect.Response[api.JoinMessResponse], error) {
	return c.joinMess.CallUnary(ctx, req)
}

func (c *messServiceClient) GetCurrentMess(ctx context.Context, req *connect.Request[api.GetCurrentMessRequest]) (*connect.Response[api.GetCurrentMessResponse], error) {
	return c.getCurrentMess.CallUnary(ctx, req)
}

func (c *messServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

type MessServiceHandler interface {
	CreateMess(context.Context, *connect.Request[api.CreateMessRequest]) (*connect.Response[api.CreateMessResponse], error)
	JoinMess(context.Context, *connect.Request[api.JoinMessRequest]) (*connect.Response[api.JoinMessResponse], error)
	GetCurrentMess(context.Context, *connect.Request[api.GetCurrentMessRequest]) (*connect.Response[api.GetCurrentMessResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewMessServiceHandler returns the mount path and handler for svc.
func NewMessServiceHandler(svc MessServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + MessServiceName + "/", route(map[string]http.Handler{
		MessServiceCreateMessProcedure:     connect.NewUnaryHandler(MessServiceCreateMessProcedure, svc.CreateMess, opts...),
		MessServiceJoinMessProcedure:       connect.NewUnaryHandler(MessServiceJoinMessProcedure, svc.JoinMess, opts...),
		MessServiceGetCurrentMessProcedure: connect.NewUnaryHandler(MessServiceGetCurrentMessProcedure, svc.GetCurrentMess, opts...),
		MessServiceRemoveMemberProcedure:   connect.NewUnaryHandler(MessServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
	})
}

// UnimplementedMessServiceHandler answers every procedure with CodeUnimplemented.
type UnimplementedMessServiceHandler struct{}

func (UnimplementedMessServiceHandler) CreateMess(context.Context, *connect.Request[api.CreateMessRequest]) (*connect.Response[api.CreateMessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.MessService.CreateMess is not implemented"))
}

func (UnimplementedMessServiceHandler) JoinMess(context.Context, *connect.Request[api.JoinMessRequest]) (*connect.Response[api.JoinMessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.MessService.JoinMess is not implemented"))
}

func (UnimplementedMessServiceHandler) GetCurrentMess(context.Context, *connect.Request[api.GetCurrentMessRequest]) (*connect.Response[api.GetCurrentMessResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.MessService.GetCurrentMess is not implemented"))
}

func (UnimplementedMessServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.MessService.RemoveMember is not implemented"))
}
