package entity

import "golang.org/x/exp/slices"

// Role is a snapshot of a guild role as read from the directory. Permissions
// is the raw permission bitfield; zero means no permissions.
type Role struct {
	ID          string
	Name        string
	Mentionable bool
	Permissions uint64
	Position    int
}

func (r Role) Mention() string {
	return "<@&" + r.ID + ">"
}

type Member struct {
	ID    string
	Bot   bool
	Roles []string
}

func (m Member) HasRole(roleID string) bool {
	return slices.Contains(m.Roles, roleID)
}

// Guild is a point-in-time snapshot of a guild's role/member graph. Me is
// the member record of the bot itself.
type Guild struct {
	ID      string
	Name    string
	Roles   []Role
	Members []Member
	Me      Member
}

func (g *Guild) Member(memberID string) (Member, bool) {
	for _, member := range g.Members {
		if member.ID == memberID {
			return member, true
		}
	}

	return Member{}, false
}

// Holders returns the members currently holding the given role.
func (g *Guild) Holders(roleID string) []Member {
	var holders []Member
	for _, member := range g.Members {
		if member.HasRole(roleID) {
			holders = append(holders, member)
		}
	}

	return holders
}
