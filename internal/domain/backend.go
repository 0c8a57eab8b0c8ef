package domain

import "context"

// HRBackend 远端 HR 系统（角色/用户/组织）的全部操作
type HRBackend interface {
	GetRole(ctx context.Context, id string) (*Role, error)
	GetRoleMembers(ctx context.Context, roleID string, page, pageSize int) ([]RoleMember, error)
	ListRoles(ctx context.Context, q RoleQuery) ([]Role, error)
	ListUsers(ctx context.Context, q UserQuery) ([]User, error)
	ListDepartments(ctx context.Context, page, pageSize int) ([]Department, error)
	ListTeams(ctx context.Context, departmentID string) ([]Team, error)
	RoleStats(ctx context.Context) (RoleStats, error)
	RolePermissions(ctx context.Context, roleID string) ([]Permission, error)

	AssignUser(ctx context.Context, roleID, userID string) error
	RemoveUser(ctx context.Context, roleID, userID string) error

	CreateRole(ctx context.Context, in RoleInput) error
	UpdateRole(ctx context.Context, id string, in RoleInput) error
	DeleteRole(ctx context.Context, id string) error
	RestoreRole(ctx context.Context, id string) error
}
