package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/erickyeagle/notification-roles-bot/internal/entity"
	"github.com/erickyeagle/notification-roles-bot/pkg/api/discord"
)

// DirectoryRepository is the bot's view of the externally-owned guild
// directory. Every read returns a fresh snapshot; nothing is cached between
// invocations.
type DirectoryRepository interface {
	GetGuild(ctx context.Context, guildID string) (*entity.Guild, error)
	CreateRole(ctx context.Context, guildID, name string) (entity.Role, error)
	DeleteRole(ctx context.Context, guildID, roleID string) error
	GrantRole(ctx context.Context, guildID, memberID, roleID string) error
	RevokeRole(ctx context.Context, guildID, memberID, roleID string) error
}

type directoryRepository struct {
	endpoint discord.IEndpoint
	botID    string
}

func NewDirectoryRepository(endpoint discord.IEndpoint, botID string) DirectoryRepository {
	return &directoryRepository{
		endpoint: endpoint,
		botID:    botID,
	}
}

func (r *directoryRepository) GetGuild(ctx context.Context, guildID string) (*entity.Guild, error) {
	guild, err := r.endpoint.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	roles, err := r.endpoint.GetRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	members, err := r.endpoint.ListMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	result := &entity.Guild{
		ID:   guild.ID,
		Name: guild.Name,
	}

	for _, role := range roles {
		result.Roles = append(result.Roles, entity.Role{
			ID:          role.ID,
			Name:        role.Name,
			Mentionable: role.Mentionable,
			Permissions: role.Permissions,
			Position:    role.Position,
		})
	}

	// The roles endpoint does not guarantee ordering; the guild's native
	// ordering is ascending position.
	sort.SliceStable(result.Roles, func(i, j int) bool {
		return result.Roles[i].Position < result.Roles[j].Position
	})

	for _, member := range members {
		result.Members = append(result.Members, entity.Member{
			ID:    member.ID,
			Bot:   member.Bot,
			Roles: member.Roles,
		})
	}

	me, ok := result.Member(r.botID)
	if !ok {
		return nil, fmt.Errorf("not found bot member in guild %s", guildID)
	}

	result.Me = me
	return result, nil
}

func (r *directoryRepository) CreateRole(ctx context.Context, guildID, name string) (entity.Role, error) {
	role, err := r.endpoint.CreateRole(ctx, guildID, name)
	if err != nil {
		return entity.Role{}, err
	}

	return entity.Role{
		ID:          role.ID,
		Name:        role.Name,
		Mentionable: role.Mentionable,
		Permissions: role.Permissions,
		Position:    role.Position,
	}, nil
}

func (r *directoryRepository) DeleteRole(ctx context.Context, guildID, roleID string) error {
	return r.endpoint.DeleteRole(ctx, guildID, roleID)
}

func (r *directoryRepository) GrantRole(ctx context.Context, guildID, memberID, roleID string) error {
	return r.endpoint.GiveRole(ctx, guildID, memberID, roleID)
}

func (r *directoryRepository) RevokeRole(ctx context.Context, guildID, memberID, roleID string) error {
	return r.endpoint.TakeRole(ctx, guildID, memberID, roleID)
}
