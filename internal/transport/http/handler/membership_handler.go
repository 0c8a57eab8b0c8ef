package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/i18n"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/membership"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/service"
	httpez "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/ez"
	mdw "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/middleware"
)

// MembershipHandler 角色成员页：查看、分配、移除、审计
type MembershipHandler struct {
	svc *service.MembershipService
	tr  *i18n.Translator
}

func NewMembershipHandler(svc *service.MembershipService, tr *i18n.Translator) *MembershipHandler {
	return &MembershipHandler{svc: svc, tr: tr}
}

func (h *MembershipHandler) Priority() int { return 20 }

// viewQ 未出现的参数不改变已保存的状态
type viewQ struct {
	Search     *string `form:"search"`
	Department *string `form:"department"`
	Team       *string `form:"team"`
	Page       *int    `form:"page" binding:"omitempty,min=1"`
	Nav        string  `form:"nav" binding:"omitempty,oneof=next prev"`
}

func (q viewQ) change() membership.Change {
	return membership.Change{
		Search:       q.Search,
		DepartmentID: q.Department,
		TeamID:       q.Team,
		Page:         q.Page,
		Nav:          membership.Nav(q.Nav),
	}
}

type auditQ struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type auditOut struct {
	Total int64               `json:"total"`
	Items []domain.AuditEntry `json:"items"`
}

func actor(c *gin.Context) string {
	if claims := mdw.ClaimsFrom(c); claims != nil {
		return claims.UID
	}
	return ""
}

func (h *MembershipHandler) mutation(c *gin.Context) service.MutationRequest {
	return service.MutationRequest{
		Actor:     actor(c),
		RoleID:    c.Param("id"),
		UserID:    c.Param("userId"),
		Localizer: h.tr.Localizer(c.GetHeader("Accept-Language")),
	}
}

func (h *MembershipHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[viewQ, *service.View]{
		Method: http.MethodGet,
		Path:   "/roles/:id/members",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *viewQ) (*service.View, error) {
			v, err := h.svc.View(c.Request.Context(), service.ViewRequest{
				Actor: actor(c), RoleID: c.Param("id"), Change: in.change(),
			})
			return v, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *service.MutationResult]{
		Method: http.MethodPost,
		Path:   "/roles/:id/members/:userId",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.MutationResult, error) {
			res, err := h.svc.Assign(c.Request.Context(), h.mutation(c))
			return res, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *service.MutationResult]{
		Method: http.MethodDelete,
		Path:   "/roles/:id/members/:userId",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.MutationResult, error) {
			res, err := h.svc.Remove(c.Request.Context(), h.mutation(c))
			return res, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[auditQ, auditOut]{
		Method: http.MethodGet,
		Path:   "/roles/:id/audit",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *auditQ) (auditOut, error) {
			items, total, err := h.svc.Audit(c.Request.Context(), c.Param("id"), in.Offset, in.Limit)
			if err != nil {
				return auditOut{}, mapErr(err)
			}
			return auditOut{Total: total, Items: items}, nil
		},
	})
}
