package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group, creating a member for each name.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.InfoContext(ctx, "CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	group := &models.Group{Name: req.Msg.Name}
	for _, name := range req.Msg.Members {
		group.Members = append(group.Members, models.Member{Name: name})
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.ErrorContext(ctx, "CreateGroup failed", "error", err)
		return nil, toConnectError(err, "failed to create group")
	}

	slog.InfoContext(ctx, "Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.InfoContext(ctx, "GetGroup request received", "group_id", req.Msg.GroupID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to get group")
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.InfoContext(ctx, "ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "ListGroups failed", "error", err)
		return nil, toConnectError(err, "failed to list groups")
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.InfoContext(ctx, "ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// AddMember adds an existing member to a group, or creates a new member by name.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.InfoContext(ctx, "AddMember request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
		"name", req.Msg.Name,
	)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	member := &models.Member{ID: req.Msg.MemberID, Name: req.Msg.Name}
	if err := s.store.AddGroupMember(ctx, req.Msg.GroupID, member); err != nil {
		slog.ErrorContext(ctx, "AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to add member")
	}

	slog.InfoContext(ctx, "Member added", "group_id", req.Msg.GroupID, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(*member)}), nil
}
