package domain

import "errors"

type RoleStatus string

const (
	RoleActive   RoleStatus = "active"
	RoleInactive RoleStatus = "inactive"
)

var ErrInvalidStatus = errors.New("invalid role status")

func ParseRoleStatus(s string) (RoleStatus, error) {
	switch RoleStatus(s) {
	case "":
		return "", nil
	case RoleActive, RoleInactive:
		return RoleStatus(s), nil
	}
	return "", ErrInvalidStatus
}

type Permission struct {
	ID          string `json:"permissionId"`
	Name        string `json:"permissionName"`
	Description string `json:"description,omitempty"`
}

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Status      RoleStatus   `json:"status"`
	Permissions []Permission `json:"permissions"`
	UsersCount  int          `json:"usersCount"`
}

// RoleMember 角色成员接口的一行；后端有时给 userId，有时只给 id
type RoleMember struct {
	UserIDField string `json:"userId,omitempty"`
	IDField     string `json:"id,omitempty"`
}

func (m RoleMember) UserID() string {
	if m.UserIDField != "" {
		return m.UserIDField
	}
	return m.IDField
}

// RoleStats 统计名 -> 数值
type RoleStats map[string]float64

// RoleInput 创建/更新角色的载荷
type RoleInput struct {
	Name          string   `json:"name" binding:"required,max=128"`
	Description   string   `json:"description,omitempty" binding:"omitempty,max=512"`
	PermissionIDs []string `json:"permissionIds" binding:"dive,required"`
}

type RoleQuery struct {
	Page     int
	PageSize int
	Status   RoleStatus
}
