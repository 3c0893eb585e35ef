package model

type Role struct {
	ID   string
	Name string
}

func (r Role) Mention() string {
	return "<@&" + r.ID + ">"
}

type AddRoleRequest struct {
	GuildID   string
	RoleToken string
}

type AddRoleResponse struct {
	Role Role
}

type ListRolesRequest struct {
	GuildID string
}

type ListRolesResponse struct {
	Roles []Role
}

type SubscribeRequest struct {
	GuildID   string
	MemberID  string
	RoleToken string
}

type SubscribeResponse struct {
	Role Role
}

type UnsubscribeRequest struct {
	GuildID   string
	MemberID  string
	RoleToken string
}

type UnsubscribeResponse struct {
	Role Role
}
