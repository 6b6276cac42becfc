package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/mess"
	"github.com/mmynk/messbook/internal/middleware"
	"github.com/mmynk/messbook/pkg/api"
	"github.com/mmynk/messbook/pkg/api/apiconnect"
)

// MessService implements the Connect MessService.
type MessService struct {
	apiconnect.UnimplementedMessServiceHandler
	registry *mess.Registry
	logger   *slog.Logger
}

// NewMessService creates a MessService over the given registry.
func NewMessService(registry *mess.Registry, logger *slog.Logger) *MessService {
	return &MessService{registry: registry, logger: logger}
}

// CreateMess founds a mess with the caller as its manager.
func (s *MessService) CreateMess(ctx context.Context, req *connect.Request[api.CreateMessRequest]) (*connect.Response[api.CreateMessResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("CreateMess request received", "user_id", userID, "name", req.Msg.Name)

	created, err := s.registry.CreateMess(ctx, req.Msg.Name, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := s.registry.Members(ctx, created.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateMessResponse{Mess: toAPIMess(created, members)}), nil
}

// JoinMess adds the caller to the mess with the given join code.
func (s *MessService) JoinMess(ctx context.Context, req *connect.Request[api.JoinMessRequest]) (*connect.Response[api.JoinMessResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("JoinMess request received", "user_id", userID)

	joined, err := s.registry.JoinMess(ctx, req.Msg.Code, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := s.registry.Members(ctx, joined.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.JoinMessResponse{Mess: toAPIMess(joined, members)}), nil
}

// GetCurrentMess returns the caller's mess, roster and role.
func (s *MessService) GetCurrentMess(ctx context.Context, req *connect.Request[api.GetCurrentMessRequest]) (*connect.Response[api.GetCurrentMessResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}

	current, members, err := s.registry.Current(ctx, mc)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetCurrentMessResponse{
		Mess: toAPIMess(current, members),
		Role: string(mc.Role),
	}), nil
}

// RemoveMember removes a member from the caller's mess. An empty user ID means the caller leaves.
func (s *MessService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}

	target := req.Msg.UserID
	if target == "" {
		target = middleware.GetUserID(ctx)
	}
	if err := s.registry.RemoveMember(ctx, mc, target); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}
