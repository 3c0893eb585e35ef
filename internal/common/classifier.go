package common

import (
	"github.com/erickyeagle/notification-roles-bot/internal/entity"
)

// IsNotificationRole reports whether the role is a notification role: it is
// mentionable, carries no permissions, and the bot itself holds it. The
// check is recomputed from the guild snapshot on every call because any of
// the three conditions can change between invocations.
func IsNotificationRole(guild *entity.Guild, role entity.Role) bool {
	return role.Mentionable &&
		role.Permissions == 0 &&
		guild.Me.HasRole(role.ID)
}
