package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/cache"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/membership"
)

const (
	keyStats       = "roles:stats"
	keyDepartments = "org:departments"
	keyTeamsPrefix = "org:teams:"
)

type RoleOptions struct {
	StatsTTL      time.Duration
	RefTTL        time.Duration
	FetchPageSize int
}

// RoleService 角色列表/统计/权限/CRUD 与部门团队参考数据；cache 为 nil 时不缓存
type RoleService struct {
	hr    domain.HRBackend
	cache *cache.Cache
	opts  RoleOptions
	log   *zap.Logger
}

func NewRoleService(hr domain.HRBackend, c *cache.Cache, opts RoleOptions, l *zap.Logger) *RoleService {
	if opts.FetchPageSize <= 0 {
		opts.FetchPageSize = 1000
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &RoleService{hr: hr, cache: c, opts: opts, log: l.Named("roles")}
}

type RoleListQuery struct {
	Status   domain.RoleStatus
	Search   string
	Page     int
	PageSize int
}

type RoleList struct {
	Items      []domain.Role `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// ListRoles 后端按状态过滤，名称搜索和分页在本地做；后端 401 视为没有数据
func (s *RoleService) ListRoles(ctx context.Context, q RoleListQuery) (*RoleList, error) {
	roles, err := s.hr.ListRoles(ctx, domain.RoleQuery{Page: 1, PageSize: s.opts.FetchPageSize, Status: q.Status})
	if hrapi.IsUnauthorized(err) {
		s.log.Debug("role list unauthorized, returning empty list")
		roles, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		if term == "" || strings.Contains(strings.ToLower(r.Name), term) {
			filtered = append(filtered, r)
		}
	}

	size := q.PageSize
	if size <= 0 || size > 100 {
		size = membership.DefaultPageSize
	}
	totalPages := membership.TotalPages(len(filtered), size)
	page := membership.ClampPage(q.Page, totalPages)
	lo := min((page-1)*size, len(filtered))
	hi := min(lo+size, len(filtered))

	return &RoleList{
		Items:      filtered[lo:hi],
		Total:      len(filtered),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

func (s *RoleService) Stats(ctx context.Context) (domain.RoleStats, error) {
	return cache.Fetch(ctx, s.cache, keyStats, s.opts.StatsTTL, func(ctx context.Context) (domain.RoleStats, error) {
		return s.hr.RoleStats(ctx)
	})
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return roleOrNotFound(s.hr.GetRole(ctx, id))
}

func (s *RoleService) Permissions(ctx context.Context, id string) ([]domain.Permission, error) {
	ps, err := s.hr.RolePermissions(ctx, id)
	if hrapi.IsNotFound(err) {
		return nil, ErrRoleNotFound
	}
	if ps == nil && err == nil {
		ps = []domain.Permission{}
	}
	return ps, err
}

func (s *RoleService) Create(ctx context.Context, in domain.RoleInput) error {
	return s.afterWrite(ctx, s.hr.CreateRole(ctx, in))
}

func (s *RoleService) Update(ctx context.Context, id string, in domain.RoleInput) error {
	return s.afterWrite(ctx, s.hr.UpdateRole(ctx, id, in))
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	return s.afterWrite(ctx, s.hr.DeleteRole(ctx, id))
}

func (s *RoleService) Restore(ctx context.Context, id string) error {
	return s.afterWrite(ctx, s.hr.RestoreRole(ctx, id))
}

// afterWrite 写成功则失效统计缓存
func (s *RoleService) afterWrite(ctx context.Context, err error) error {
	if hrapi.IsNotFound(err) {
		return ErrRoleNotFound
	}
	if err != nil {
		return err
	}
	if e := s.cache.Delete(ctx, keyStats); e != nil {
		s.log.Warn("invalidate stats cache failed", zap.Error(e))
	}
	return nil
}

func (s *RoleService) Departments(ctx context.Context) ([]domain.Department, error) {
	return cache.Fetch(ctx, s.cache, keyDepartments, s.opts.RefTTL, func(ctx context.Context) ([]domain.Department, error) {
		return s.hr.ListDepartments(ctx, 1, s.opts.FetchPageSize)
	})
}

func (s *RoleService) Teams(ctx context.Context, departmentID string) ([]domain.Team, error) {
	return cache.Fetch(ctx, s.cache, keyTeamsPrefix+departmentID, s.opts.RefTTL, func(ctx context.Context) ([]domain.Team, error) {
		return s.hr.ListTeams(ctx, departmentID)
	})
}
