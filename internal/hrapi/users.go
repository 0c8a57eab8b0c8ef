package hrapi

import (
	"context"
	"net/http"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context, q domain.UserQuery) ([]domain.User, error) {
	v := pageQuery(q.Page, q.PageSize)
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.DepartmentID != "" {
		v.Set("departmentId", q.DepartmentID)
	}
	if q.TeamID != "" {
		v.Set("teamId", q.TeamID)
	}
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/api/Users", v, nil, &out)
	return out, err
}

func (c *Client) ListDepartments(ctx context.Context, page, pageSize int) ([]domain.Department, error) {
	var out []domain.Department
	err := c.do(ctx, http.MethodGet, "/api/Departments", pageQuery(page, pageSize), nil, &out)
	return out, err
}

func (c *Client) ListTeams(ctx context.Context, departmentID string) ([]domain.Team, error) {
	if departmentID == "" {
		return nil, errEmptyID
	}
	var out []domain.Team
	err := c.do(ctx, http.MethodGet, "/api/Teams/department/"+seg(departmentID), nil, nil, &out)
	return out, err
}

var _ domain.HRBackend = (*Client)(nil)
