package domain

import (
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/internal/entity"
	"github.com/erickyeagle/notification-roles-bot/internal/model"
	"github.com/erickyeagle/notification-roles-bot/pkg/errorx"
)

// ErrNotCommand marks messages outside the bot's command group. They get no
// response at all.
var ErrNotCommand = errors.New("not a bot command")

// ParseCommand turns raw message content into a command intent. The prefix
// and group keyword are matched case-insensitively, as are the subcommand
// keywords. A recognized group with a malformed rest yields BadSyntax.
func ParseCommand(cfg config.BotConfigs, content string) (model.CommandIntent, error) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], cfg.Prefix) {
		return model.CommandIntent{}, ErrNotCommand
	}

	group := strings.TrimPrefix(fields[0], cfg.Prefix)
	if !strings.EqualFold(group, cfg.Group) {
		return model.CommandIntent{}, ErrNotCommand
	}

	if len(fields) < 2 {
		return model.CommandIntent{}, errorx.New(errorx.BadSyntax, syntaxMessage)
	}

	var action model.Action
	wantToken := true
	switch strings.ToLower(fields[1]) {
	case "add":
		action = model.ActionAddRole
	case "list":
		action = model.ActionListRoles
		wantToken = false
	case "subscribe", "sub":
		action = model.ActionSubscribe
	case "unsubscribe", "unsub":
		action = model.ActionUnsubscribe
	default:
		return model.CommandIntent{}, errorx.New(errorx.BadSyntax, syntaxMessage)
	}

	if !wantToken {
		if len(fields) != 2 {
			return model.CommandIntent{}, errorx.New(errorx.BadSyntax, syntaxMessage)
		}

		return model.CommandIntent{Action: action}, nil
	}

	if len(fields) != 3 {
		return model.CommandIntent{}, errorx.New(errorx.BadSyntax, syntaxMessage)
	}

	return model.CommandIntent{Action: action, RoleToken: fields[2]}, nil
}

// ResolveRoleToken looks a role up by mention, ID, or exact name, in that
// order. Name matching is case-sensitive and the first match in the guild's
// native role ordering wins. Any failure yields not-found.
func ResolveRoleToken(guild *entity.Guild, token string) (entity.Role, bool) {
	if id, ok := parseRoleMention(token); ok {
		return findRoleByID(guild, id)
	}

	if _, err := snowflake.ParseString(token); err == nil {
		if role, ok := findRoleByID(guild, token); ok {
			return role, true
		}
	}

	for _, role := range guild.Roles {
		if role.Name == token {
			return role, true
		}
	}

	return entity.Role{}, false
}

func parseRoleMention(token string) (string, bool) {
	if !strings.HasPrefix(token, "<@&") || !strings.HasSuffix(token, ">") {
		return "", false
	}

	id := token[len("<@&") : len(token)-1]
	if _, err := snowflake.ParseString(id); err != nil {
		return "", false
	}

	return id, true
}

func findRoleByID(guild *entity.Guild, id string) (entity.Role, bool) {
	for _, role := range guild.Roles {
		if role.ID == id {
			return role, true
		}
	}

	return entity.Role{}, false
}
