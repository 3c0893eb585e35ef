package model

import "github.com/erickyeagle/notification-roles-bot/internal/entity"

func ConvertRole(role entity.Role) Role {
	return Role{
		ID:   role.ID,
		Name: role.Name,
	}
}
