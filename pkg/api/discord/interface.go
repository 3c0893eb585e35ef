package discord

import "context"

type IEndpoint interface {
	GetMe(ctx context.Context) (User, error)
	GetGuild(ctx context.Context, guildID string) (Guild, error)
	GetRoles(ctx context.Context, guildID string) ([]Role, error)
	GetMember(ctx context.Context, guildID, userID string) (Member, error)
	ListMembers(ctx context.Context, guildID string) ([]Member, error)
	CreateRole(ctx context.Context, guildID, name string) (Role, error)
	DeleteRole(ctx context.Context, guildID, roleID string) error
	GiveRole(ctx context.Context, guildID, userID, roleID string) error
	TakeRole(ctx context.Context, guildID, userID, roleID string) error
	CreateMessage(ctx context.Context, channelID, replyToID string, embed Embed) error
}
