package domain

import (
	"context"

	"github.com/erickyeagle/notification-roles-bot/internal/common"
	"github.com/erickyeagle/notification-roles-bot/internal/entity"
	"github.com/erickyeagle/notification-roles-bot/internal/model"
	"github.com/erickyeagle/notification-roles-bot/internal/repository"
	"github.com/erickyeagle/notification-roles-bot/pkg/errorx"
	"github.com/erickyeagle/notification-roles-bot/pkg/xcontext"
)

type SubscriptionDomain interface {
	AddRole(context.Context, *model.AddRoleRequest) (*model.AddRoleResponse, error)
	ListRoles(context.Context, *model.ListRolesRequest) (*model.ListRolesResponse, error)
	Subscribe(context.Context, *model.SubscribeRequest) (*model.SubscribeResponse, error)
	Unsubscribe(context.Context, *model.UnsubscribeRequest) (*model.UnsubscribeResponse, error)
}

type subscriptionDomain struct {
	directoryRepo repository.DirectoryRepository
}

func NewSubscriptionDomain(directoryRepo repository.DirectoryRepository) SubscriptionDomain {
	return &subscriptionDomain{
		directoryRepo: directoryRepo,
	}
}

func (d *subscriptionDomain) AddRole(ctx context.Context, req *model.AddRoleRequest) (*model.AddRoleResponse, error) {
	guild, err := d.directoryRepo.GetGuild(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild %s: %v", req.GuildID, err)
		return nil, errorx.Unknown
	}

	if role, ok := ResolveRoleToken(guild, req.RoleToken); ok {
		return nil, errorx.New(errorx.RoleAlreadyExists, roleFoundInGuildMessage, role.Mention())
	}

	role, err := d.directoryRepo.CreateRole(ctx, req.GuildID, req.RoleToken)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create role %q in guild %s: %v", req.RoleToken, req.GuildID, err)
		return nil, errorx.New(errorx.RoleCreationFailed, roleAddToGuildMessage, req.RoleToken)
	}

	// Holding the role is what marks it as a notification role. If this
	// grant fails the role exists unclassified; no compensating deletion.
	if err := d.directoryRepo.GrantRole(ctx, req.GuildID, guild.Me.ID, role.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot grant role %s to bot in guild %s: %v", role.ID, req.GuildID, err)
		return nil, errorx.New(errorx.RoleCreationFailed, roleAddToGuildMessage, req.RoleToken)
	}

	return &model.AddRoleResponse{Role: model.ConvertRole(role)}, nil
}

func (d *subscriptionDomain) ListRoles(ctx context.Context, req *model.ListRolesRequest) (*model.ListRolesResponse, error) {
	guild, err := d.directoryRepo.GetGuild(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild %s: %v", req.GuildID, err)
		return nil, errorx.Unknown
	}

	respRoles := []model.Role{}
	for _, role := range guild.Roles {
		if common.IsNotificationRole(guild, role) {
			respRoles = append(respRoles, model.ConvertRole(role))
		}
	}

	return &model.ListRolesResponse{Roles: respRoles}, nil
}

func (d *subscriptionDomain) Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.SubscribeResponse, error) {
	guild, err := d.directoryRepo.GetGuild(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild %s: %v", req.GuildID, err)
		return nil, errorx.Unknown
	}

	role, ok := ResolveRoleToken(guild, req.RoleToken)
	if !ok {
		return nil, errorx.New(errorx.RoleNotFound, roleNotFoundInGuildMsg, req.RoleToken)
	}

	if !common.IsNotificationRole(guild, role) {
		return nil, errorx.New(errorx.RoleNotCompatible, roleNotCompatibleMessage, role.Mention())
	}

	member, ok := guild.Member(req.MemberID)
	if !ok {
		xcontext.Logger(ctx).Errorf("Not found member %s in guild %s", req.MemberID, req.GuildID)
		return nil, errorx.Unknown
	}

	if member.HasRole(role.ID) {
		return nil, errorx.New(errorx.RoleAlreadyHeld, roleFoundInMemberMessage, role.Mention())
	}

	if err := d.directoryRepo.GrantRole(ctx, req.GuildID, member.ID, role.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot grant role %s to member %s: %v", role.ID, member.ID, err)
		return nil, errorx.New(errorx.Internal, roleAddToMemberMessage, role.Mention())
	}

	return &model.SubscribeResponse{Role: model.ConvertRole(role)}, nil
}

func (d *subscriptionDomain) Unsubscribe(ctx context.Context, req *model.UnsubscribeRequest) (*model.UnsubscribeResponse, error) {
	guild, err := d.directoryRepo.GetGuild(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild %s: %v", req.GuildID, err)
		return nil, errorx.Unknown
	}

	role, ok := ResolveRoleToken(guild, req.RoleToken)
	if !ok {
		return nil, errorx.New(errorx.RoleNotFound, roleNotFoundInGuildMsg, req.RoleToken)
	}

	if !common.IsNotificationRole(guild, role) {
		return nil, errorx.New(errorx.RoleNotCompatible, roleNotCompatibleMessage, role.Mention())
	}

	member, ok := guild.Member(req.MemberID)
	if !ok {
		xcontext.Logger(ctx).Errorf("Not found member %s in guild %s", req.MemberID, req.GuildID)
		return nil, errorx.Unknown
	}

	if !member.HasRole(role.ID) {
		return nil, errorx.New(errorx.RoleNotHeld, roleNotFoundInMemberMsg, role.Mention())
	}

	if err := d.directoryRepo.RevokeRole(ctx, req.GuildID, member.ID, role.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke role %s from member %s: %v", role.ID, member.ID, err)
		return nil, errorx.Unknown
	}

	d.deleteIfOrphaned(ctx, guild, member.ID, role.ID)

	return &model.UnsubscribeResponse{Role: model.ConvertRole(role)}, nil
}

// deleteIfOrphaned removes the role when the bot is its only remaining
// holder after the member's revoke. The deletion is best-effort; its failure
// is deliberately discarded and never reaches the user.
func (d *subscriptionDomain) deleteIfOrphaned(ctx context.Context, guild *entity.Guild, revokedMemberID, roleID string) {
	remaining := []entity.Member{}
	for _, holder := range guild.Holders(roleID) {
		if holder.ID == revokedMemberID {
			continue
		}

		remaining = append(remaining, holder)
	}

	if len(remaining) != 1 || remaining[0].ID != guild.Me.ID {
		return
	}

	if err := d.directoryRepo.DeleteRole(ctx, guild.ID, roleID); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot delete orphaned role %s in guild %s: %v", roleID, guild.ID, err)
	}
}
