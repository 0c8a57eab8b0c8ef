package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/service"
	httpez "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/ez"
)

// RoleHandler 角色列表/统计/CRUD 以及部门团队参考数据
type RoleHandler struct {
	svc *service.RoleService
}

func NewRoleHandler(svc *service.RoleService) *RoleHandler { return &RoleHandler{svc: svc} }

func (h *RoleHandler) Priority() int { return 10 }

type roleListQ struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type idOut struct {
	ID string `json:"id,omitempty"`
}

func (h *RoleHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[roleListQ, *service.RoleList]{
		Method: http.MethodGet,
		Path:   "/roles",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *roleListQ) (*service.RoleList, error) {
			st, err := domain.ParseRoleStatus(in.Status)
			if err != nil {
				return nil, mapErr(err)
			}
			out, err := h.svc.ListRoles(c.Request.Context(), service.RoleListQuery{
				Status: st, Search: in.Search, Page: in.Page, PageSize: in.PageSize,
			})
			return out, mapErr(err)
		},
	})

	// 静态路径优先于 /roles/:id
	httpez.RegisterAction(ez, httpez.Action[struct{}, domain.RoleStats]{
		Method: http.MethodGet,
		Path:   "/roles/stats",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.RoleStats, error) {
			st, err := h.svc.Stats(c.Request.Context())
			if st == nil && err == nil {
				st = domain.RoleStats{}
			}
			return st, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.RoleInput, idOut]{
		Method: http.MethodPost,
		Path:   "/roles",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.RoleInput) (idOut, error) {
			return idOut{}, mapErr(h.svc.Create(c.Request.Context(), *in))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Role]{
		Method: http.MethodGet,
		Path:   "/roles/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Role, error) {
			r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			return r, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.RoleInput, idOut]{
		Method: http.MethodPut,
		Path:   "/roles/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.RoleInput) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, mapErr(h.svc.Update(c.Request.Context(), id, *in))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/roles/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, mapErr(h.svc.Delete(c.Request.Context(), id))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, idOut]{
		Method: http.MethodPost,
		Path:   "/roles/:id/restore",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, mapErr(h.svc.Restore(c.Request.Context(), id))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Permission]{
		Method: http.MethodGet,
		Path:   "/roles/:id/permissions",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Permission, error) {
			ps, err := h.svc.Permissions(c.Request.Context(), c.Param("id"))
			return ps, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Department]{
		Method: http.MethodGet,
		Path:   "/departments",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Department, error) {
			ds, err := h.svc.Departments(c.Request.Context())
			if ds == nil && err == nil {
				ds = []domain.Department{}
			}
			return ds, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Team]{
		Method: http.MethodGet,
		Path:   "/departments/:id/teams",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Team, error) {
			ts, err := h.svc.Teams(c.Request.Context(), c.Param("id"))
			if ts == nil && err == nil {
				ts = []domain.Team{}
			}
			return ts, mapErr(err)
		},
	})
}
