package hrapi

import (
	"context"
	"net/http"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
)

func (c *Client) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var r domain.Role
	if err := c.do(ctx, http.MethodGet, "/api/Roles/"+seg(id), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) GetRoleMembers(ctx context.Context, roleID string, page, pageSize int) ([]domain.RoleMember, error) {
	var out []domain.RoleMember
	err := c.do(ctx, http.MethodGet, "/api/Roles/"+seg(roleID)+"/users", pageQuery(page, pageSize), nil, &out)
	return out, err
}

func (c *Client) ListRoles(ctx context.Context, q domain.RoleQuery) ([]domain.Role, error) {
	v := pageQuery(q.Page, q.PageSize)
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	var out []domain.Role
	err := c.do(ctx, http.MethodGet, "/api/Roles", v, nil, &out)
	return out, err
}

func (c *Client) RoleStats(ctx context.Context) (domain.RoleStats, error) {
	out := domain.RoleStats{}
	err := c.do(ctx, http.MethodGet, "/api/Roles/statistics", nil, nil, &out)
	return out, err
}

func (c *Client) RolePermissions(ctx context.Context, roleID string) ([]domain.Permission, error) {
	var out []domain.Permission
	err := c.do(ctx, http.MethodGet, "/api/Roles/"+seg(roleID)+"/permissions", nil, nil, &out)
	return out, err
}

func (c *Client) AssignUser(ctx context.Context, roleID, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/Roles/"+seg(roleID)+"/users/"+seg(userID), nil, nil, nil)
}

func (c *Client) RemoveUser(ctx context.Context, roleID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/Roles/"+seg(roleID)+"/users/"+seg(userID), nil, nil, nil)
}

func (c *Client) CreateRole(ctx context.Context, in domain.RoleInput) error {
	return c.do(ctx, http.MethodPost, "/api/Roles", nil, in, nil)
}

func (c *Client) UpdateRole(ctx context.Context, id string, in domain.RoleInput) error {
	return c.do(ctx, http.MethodPut, "/api/Roles/"+seg(id), nil, in, nil)
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/Roles/"+seg(id), nil, nil, nil)
}

func (c *Client) RestoreRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/Roles/"+seg(id)+"/restore", nil, nil, nil)
}
