package testutil

import (
	"context"

	"github.com/erickyeagle/notification-roles-bot/internal/entity"
	"github.com/erickyeagle/notification-roles-bot/pkg/logger"
	"github.com/erickyeagle/notification-roles-bot/pkg/xcontext"
)

const (
	BotID      = "bot-1"
	User1ID    = "user-1"
	User2ID    = "user-2"
	Guild1ID   = "guild-1"
	EveryoneID = "guild-1" // the @everyone role shares the guild ID
)

// Role IDs are numeric because Discord role IDs are snowflakes and the
// resolver validates them as such.
var (
	RoleEveryone = entity.Role{ID: EveryoneID, Name: "@everyone", Position: 0}

	// Alerts qualifies: mentionable, no permissions, held by the bot.
	RoleAlerts = entity.Role{ID: "1001", Name: "Alerts", Mentionable: true, Position: 1}

	// News qualifies and is held by user-2 besides the bot.
	RoleNews = entity.Role{ID: "1002", Name: "News", Mentionable: true, Position: 2}

	// Admin carries permissions, so it never qualifies.
	RoleAdmin = entity.Role{ID: "1003", Name: "Admin", Mentionable: true, Permissions: 8, Position: 3}

	// Quiet is not mentionable.
	RoleQuiet = entity.Role{ID: "1004", Name: "Quiet", Position: 4}

	// Loose is mentionable and permissionless but the bot does not hold it.
	RoleLoose = entity.Role{ID: "1005", Name: "Loose", Mentionable: true, Position: 5}
)

// Guild1 returns a fresh copy of the fixture guild so tests can mutate the
// directory without bleeding into each other.
func Guild1() *entity.Guild {
	bot := entity.Member{
		ID:    BotID,
		Bot:   true,
		Roles: []string{RoleAlerts.ID, RoleNews.ID},
	}

	return &entity.Guild{
		ID:   Guild1ID,
		Name: "guild-one",
		Roles: []entity.Role{
			RoleEveryone, RoleAlerts, RoleNews, RoleAdmin, RoleQuiet, RoleLoose,
		},
		Members: []entity.Member{
			bot,
			{ID: User1ID},
			{ID: User2ID, Roles: []string{RoleNews.ID}},
		},
		Me: bot,
	}
}

// MockContext returns a context with a silenced logger.
func MockContext() context.Context {
	return xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
}
