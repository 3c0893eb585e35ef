package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/erickyeagle/notification-roles-bot/internal/entity"
)

// Directory is an in-memory stand-in for the guild directory. Reads return
// deep copies so the domain only observes state through fresh snapshots, the
// way it does against the real directory.
type Directory struct {
	mutex  sync.Mutex
	guilds map[string]*entity.Guild

	FailCreateRole bool
	FailGrantRole  bool
	FailRevokeRole bool
	FailDeleteRole bool

	DeletedRoles []string

	nextRoleID int
}

func NewDirectory(guilds ...*entity.Guild) *Directory {
	d := &Directory{guilds: map[string]*entity.Guild{}}
	for _, guild := range guilds {
		d.guilds[guild.ID] = cloneGuild(guild)
	}

	return d
}

func (d *Directory) GetGuild(ctx context.Context, guildID string) (*entity.Guild, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	guild, ok := d.guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("not found guild %s", guildID)
	}

	return cloneGuild(guild), nil
}

func (d *Directory) CreateRole(ctx context.Context, guildID, name string) (entity.Role, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.FailCreateRole {
		return entity.Role{}, errors.New("directory rejected role creation")
	}

	guild, ok := d.guilds[guildID]
	if !ok {
		return entity.Role{}, fmt.Errorf("not found guild %s", guildID)
	}

	d.nextRoleID++
	role := entity.Role{
		ID:          fmt.Sprintf("created-role-%d", d.nextRoleID),
		Name:        name,
		Mentionable: true,
		Position:    len(guild.Roles),
	}

	guild.Roles = append(guild.Roles, role)
	return role, nil
}

func (d *Directory) DeleteRole(ctx context.Context, guildID, roleID string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.FailDeleteRole {
		return errors.New("directory rejected role deletion")
	}

	guild, ok := d.guilds[guildID]
	if !ok {
		return fmt.Errorf("not found guild %s", guildID)
	}

	roles := []entity.Role{}
	for _, role := range guild.Roles {
		if role.ID != roleID {
			roles = append(roles, role)
		}
	}
	guild.Roles = roles

	for i := range guild.Members {
		guild.Members[i].Roles = removeString(guild.Members[i].Roles, roleID)
	}
	guild.Me.Roles = removeString(guild.Me.Roles, roleID)

	d.DeletedRoles = append(d.DeletedRoles, roleID)
	return nil
}

func (d *Directory) GrantRole(ctx context.Context, guildID, memberID, roleID string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.FailGrantRole {
		return errors.New("directory rejected role grant")
	}

	guild, ok := d.guilds[guildID]
	if !ok {
		return fmt.Errorf("not found guild %s", guildID)
	}

	for i := range guild.Members {
		if guild.Members[i].ID == memberID {
			if !guild.Members[i].HasRole(roleID) {
				guild.Members[i].Roles = append(guild.Members[i].Roles, roleID)
			}

			if memberID == guild.Me.ID {
				guild.Me = guild.Members[i]
			}

			return nil
		}
	}

	return fmt.Errorf("not found member %s in guild %s", memberID, guildID)
}

func (d *Directory) RevokeRole(ctx context.Context, guildID, memberID, roleID string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.FailRevokeRole {
		return errors.New("directory rejected role revoke")
	}

	guild, ok := d.guilds[guildID]
	if !ok {
		return fmt.Errorf("not found guild %s", guildID)
	}

	for i := range guild.Members {
		if guild.Members[i].ID == memberID {
			guild.Members[i].Roles = removeString(guild.Members[i].Roles, roleID)
			if memberID == guild.Me.ID {
				guild.Me = guild.Members[i]
			}

			return nil
		}
	}

	return fmt.Errorf("not found member %s in guild %s", memberID, guildID)
}

// MustGuild returns the live guild state for assertions.
func (d *Directory) MustGuild(guildID string) *entity.Guild {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	guild, ok := d.guilds[guildID]
	if !ok {
		panic("not found guild " + guildID)
	}

	return cloneGuild(guild)
}

func cloneGuild(guild *entity.Guild) *entity.Guild {
	clone := &entity.Guild{
		ID:   guild.ID,
		Name: guild.Name,
		Me:   cloneMember(guild.Me),
	}

	clone.Roles = append(clone.Roles, guild.Roles...)
	for _, member := range guild.Members {
		clone.Members = append(clone.Members, cloneMember(member))
	}

	return clone
}

func cloneMember(member entity.Member) entity.Member {
	clone := member
	clone.Roles = append([]string{}, member.Roles...)
	return clone
}

func removeString(values []string, target string) []string {
	result := []string{}
	for _, v := range values {
		if v != target {
			result = append(result, v)
		}
	}

	return result
}
