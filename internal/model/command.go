package model

type Action int

const (
	ActionAddRole Action = iota
	ActionListRoles
	ActionSubscribe
	ActionUnsubscribe
)

// CommandIntent is the parsed form of one inbound command. It lives for the
// duration of a single invocation.
type CommandIntent struct {
	Action    Action
	RoleToken string
	GuildID   string
	ChannelID string
	MemberID  string
	MessageID string
}
