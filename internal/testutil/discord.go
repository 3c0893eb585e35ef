package testutil

import (
	"context"

	"github.com/erickyeagle/notification-roles-bot/pkg/api/discord"
)

type MockDiscordEndpoint struct {
	GetMeFunc         func(ctx context.Context) (discord.User, error)
	GetGuildFunc      func(ctx context.Context, guildID string) (discord.Guild, error)
	GetRolesFunc      func(ctx context.Context, guildID string) ([]discord.Role, error)
	GetMemberFunc     func(ctx context.Context, guildID, userID string) (discord.Member, error)
	ListMembersFunc   func(ctx context.Context, guildID string) ([]discord.Member, error)
	CreateRoleFunc    func(ctx context.Context, guildID, name string) (discord.Role, error)
	DeleteRoleFunc    func(ctx context.Context, guildID, roleID string) error
	GiveRoleFunc      func(ctx context.Context, guildID, userID, roleID string) error
	TakeRoleFunc      func(ctx context.Context, guildID, userID, roleID string) error
	CreateMessageFunc func(ctx context.Context, channelID, replyToID string, embed discord.Embed) error
}

func (e *MockDiscordEndpoint) GetMe(ctx context.Context) (discord.User, error) {
	if e.GetMeFunc != nil {
		return e.GetMeFunc(ctx)
	}

	return discord.User{ID: BotID, Username: "notification-roles-bot", Bot: true}, nil
}

func (e *MockDiscordEndpoint) GetGuild(ctx context.Context, guildID string) (discord.Guild, error) {
	if e.GetGuildFunc != nil {
		return e.GetGuildFunc(ctx, guildID)
	}

	return discord.Guild{ID: guildID}, nil
}

func (e *MockDiscordEndpoint) GetRoles(ctx context.Context, guildID string) ([]discord.Role, error) {
	if e.GetRolesFunc != nil {
		return e.GetRolesFunc(ctx, guildID)
	}

	return nil, nil
}

func (e *MockDiscordEndpoint) GetMember(ctx context.Context, guildID, userID string) (discord.Member, error) {
	if e.GetMemberFunc != nil {
		return e.GetMemberFunc(ctx, guildID, userID)
	}

	return discord.Member{ID: userID}, nil
}

func (e *MockDiscordEndpoint) ListMembers(ctx context.Context, guildID string) ([]discord.Member, error) {
	if e.ListMembersFunc != nil {
		return e.ListMembersFunc(ctx, guildID)
	}

	return nil, nil
}

func (e *MockDiscordEndpoint) CreateRole(ctx context.Context, guildID, name string) (discord.Role, error) {
	if e.CreateRoleFunc != nil {
		return e.CreateRoleFunc(ctx, guildID, name)
	}

	return discord.Role{Name: name, Mentionable: true}, nil
}

func (e *MockDiscordEndpoint) DeleteRole(ctx context.Context, guildID, roleID string) error {
	if e.DeleteRoleFunc != nil {
		return e.DeleteRoleFunc(ctx, guildID, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) GiveRole(ctx context.Context, guildID, userID, roleID string) error {
	if e.GiveRoleFunc != nil {
		return e.GiveRoleFunc(ctx, guildID, userID, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) TakeRole(ctx context.Context, guildID, userID, roleID string) error {
	if e.TakeRoleFunc != nil {
		return e.TakeRoleFunc(ctx, guildID, userID, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) CreateMessage(ctx context.Context, channelID, replyToID string, embed discord.Embed) error {
	if e.CreateMessageFunc != nil {
		return e.CreateMessageFunc(ctx, channelID, replyToID, embed)
	}

	return nil
}
