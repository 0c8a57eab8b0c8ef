package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	goi18n "github.com/iota-uz/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/i18n"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/membership"
)

// UserRow 成员表一行
type UserRow struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	HasRole     bool         `json:"hasRole"`
	Departments []domain.Ref `json:"departments"`
	Teams       []domain.Ref `json:"teams"`
}

// View 角色成员页当前页的数据
type View struct {
	Role        *domain.Role           `json:"role"`
	State       membership.FilterState `json:"state"`
	Page        membership.Page        `json:"pagination"`
	WithRole    []UserRow              `json:"withRole"`
	WithoutRole []UserRow              `json:"withoutRole"`
	Pending     []string               `json:"pending"`
}

type Notification struct {
	Level   string `json:"level"` // success / error
	Message string `json:"message"`
}

type MutationResult struct {
	Notification Notification `json:"notification"`
	View         *View        `json:"view"`
}

type ViewRequest struct {
	Actor  string
	RoleID string
	Change membership.Change
}

type MutationRequest struct {
	Actor     string
	RoleID    string
	UserID    string
	Localizer *goi18n.Localizer
}

type MembershipOptions struct {
	PageSize      int
	FetchPageSize int
}

// MembershipService 角色成员页：拉取 → 过滤 → 两组划分 → 分页；变更后重新拉取，不做乐观更新
type MembershipService struct {
	hr       domain.HRBackend
	audit    domain.AuditRepository
	states   membership.StateStore
	log      *zap.Logger
	opts     MembershipOptions
	inflight *inflight
}

func NewMembershipService(hr domain.HRBackend, audit domain.AuditRepository, states membership.StateStore, opts MembershipOptions, l *zap.Logger) *MembershipService {
	if states == nil {
		states = membership.NewMemoryStore(0, 0)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = membership.DefaultPageSize
	}
	if opts.FetchPageSize <= 0 {
		opts.FetchPageSize = 1000
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &MembershipService{
		hr:       hr,
		audit:    audit,
		states:   states,
		log:      l.Named("membership"),
		opts:     opts,
		inflight: newInflight(),
	}
}

func (s *MembershipService) getRole(ctx context.Context, id string) (*domain.Role, error) {
	r, err := roleOrNotFound(s.hr.GetRole(ctx, id))
	if err != nil && !errors.Is(err, ErrRoleNotFound) {
		return nil, fmt.Errorf("load role: %w", err)
	}
	return r, err
}

func (s *MembershipService) fetchUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.hr.ListUsers(ctx, domain.UserQuery{Page: 1, PageSize: s.opts.FetchPageSize})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// fetchMembers 成员接口失败时退化为只按角色名判断，不让整页失败
func (s *MembershipService) fetchMembers(ctx context.Context, roleID string) []domain.RoleMember {
	rows, err := s.hr.GetRoleMembers(ctx, roleID, 1, s.opts.FetchPageSize)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("role members unavailable, matching by role name only",
				zap.String("role_id", roleID), zap.Error(err))
		}
		return nil
	}
	return rows
}

// View 三个请求并发；角色和用户列表是必需的，任一失败整页失败
func (s *MembershipService) View(ctx context.Context, req ViewRequest) (*View, error) {
	var (
		role    *domain.Role
		members []domain.RoleMember
		users   []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		role, err = s.getRole(gctx, req.RoleID)
		return err
	})
	g.Go(func() error {
		members = s.fetchMembers(gctx, req.RoleID)
		return nil
	})
	g.Go(func() (err error) {
		users, err = s.fetchUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	key := membership.StateKey(req.Actor, req.RoleID)
	state := s.loadState(ctx, key)
	changed := state.ApplyFilters(req.Change)
	return s.render(ctx, key, role, users, members, state, req.Change, changed), nil
}

func (s *MembershipService) loadState(ctx context.Context, key string) membership.FilterState {
	st, ok, err := s.states.Load(ctx, key)
	if err != nil {
		s.log.Warn("load view state failed, starting fresh", zap.String("key", key), zap.Error(err))
	}
	if !ok || err != nil {
		return membership.NewFilterState(s.opts.PageSize)
	}
	if st.PageSize <= 0 {
		st.PageSize = s.opts.PageSize
	}
	return st
}

func (s *MembershipService) render(
	ctx context.Context,
	key string,
	role *domain.Role,
	users []domain.User,
	members []domain.RoleMember,
	state membership.FilterState,
	change membership.Change,
	filtersChanged bool,
) *View {
	pred := membership.Predicate(membership.NewMemberSet(members), role.Name)
	groups := membership.Partition(state.Filter().Apply(users), pred)

	state.ApplyPaging(change, filtersChanged, membership.TotalPages(groups.Len(), state.PageSize))
	if err := s.states.Save(ctx, key, state); err != nil {
		s.log.Warn("save view state failed", zap.String("key", key), zap.Error(err))
	}

	page := membership.Window(len(groups.WithRole), len(groups.WithoutRole), state.Page, state.PageSize)
	with, without := groups.Slice(page)
	return &View{
		Role:        role,
		State:       state,
		Page:        page,
		WithRole:    toRows(with, true),
		WithoutRole: toRows(without, false),
		Pending:     s.inflight.pending(role.ID),
	}
}

func toRows(us []domain.User, hasRole bool) []UserRow {
	out := make([]UserRow, 0, len(us))
	for _, u := range us {
		out = append(out, UserRow{
			ID: u.ID, Name: u.FullName(), Email: u.Email, HasRole: hasRole,
			Departments: u.Departments, Teams: u.Teams,
		})
	}
	return out
}

func (s *MembershipService) Assign(ctx context.Context, req MutationRequest) (*MutationResult, error) {
	return s.mutate(ctx, req, domain.ActionAssign)
}

func (s *MembershipService) Remove(ctx context.Context, req MutationRequest) (*MutationResult, error) {
	return s.mutate(ctx, req, domain.ActionRemove)
}

// mutate Idle → Pending → Success/Failed。成功后并发重新拉取用户和角色成员，两者都返回才算完成
func (s *MembershipService) mutate(ctx context.Context, req MutationRequest, action domain.MutationAction) (*MutationResult, error) {
	if !s.inflight.tryAcquire(req.RoleID, req.UserID) {
		return nil, &MutationError{Action: action, Message: i18n.Translate(req.Localizer, i18n.MsgPending, nil), Err: ErrMutationPending}
	}
	defer s.inflight.release(req.RoleID, req.UserID)

	role, err := s.getRole(ctx, req.RoleID)
	if errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.failed(ctx, req, action, err)
	}

	switch action {
	case domain.ActionAssign:
		err = s.hr.AssignUser(ctx, req.RoleID, req.UserID)
	default:
		err = s.hr.RemoveUser(ctx, req.RoleID, req.UserID)
	}
	if err != nil {
		return nil, s.failed(ctx, req, action, err)
	}

	var (
		users   []domain.User
		members []domain.RoleMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.fetchUsers(gctx)
		return err
	})
	g.Go(func() error {
		members = s.fetchMembers(gctx, req.RoleID)
		return nil
	})
	refetchErr := g.Wait()

	msg := i18n.Translate(req.Localizer, successMsgID(action), map[string]any{
		"User": displayName(users, req.UserID),
		"Role": role.Name,
	})
	s.finish(ctx, req, action, domain.OutcomeSuccess, msg)

	res := &MutationResult{Notification: Notification{Level: "success", Message: msg}}
	if refetchErr != nil {
		// 写入已成功，只是刷新失败；由调用方重新加载视图
		s.log.Warn("refetch after membership change failed",
			zap.String("role_id", req.RoleID), zap.Error(refetchErr))
		return res, nil
	}

	key := membership.StateKey(req.Actor, req.RoleID)
	res.View = s.render(ctx, key, role, users, members, s.loadState(ctx, key), membership.Change{}, false)
	return res, nil
}

// failed 后端给了 errorMessage / message 就用它，否则用本地化的通用文案
func (s *MembershipService) failed(ctx context.Context, req MutationRequest, action domain.MutationAction, err error) error {
	msg := hrapi.ServerMessage(err)
	if msg == "" {
		msg = i18n.Translate(req.Localizer, failedMsgID(action), nil)
	}
	s.finish(ctx, req, action, domain.OutcomeFailed, msg)
	return &MutationError{Action: action, Message: msg, Err: err}
}

func (s *MembershipService) finish(ctx context.Context, req MutationRequest, action domain.MutationAction, outcome domain.Outcome, msg string) {
	mutationTotal.WithLabelValues(string(action), string(outcome)).Inc()

	fields := []zap.Field{
		zap.String("actor", req.Actor), zap.String("role_id", req.RoleID),
		zap.String("user_id", req.UserID), zap.String("action", string(action)),
	}
	if outcome == domain.OutcomeFailed {
		s.log.Warn("membership change failed", append(fields, zap.String("message", msg))...)
	} else {
		s.log.Info("membership changed", fields...)
	}

	if s.audit == nil {
		return
	}
	// 审计写入不跟随请求取消
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	err := s.audit.Record(actx, &domain.AuditEntry{
		Actor: req.Actor, RoleID: req.RoleID, UserID: req.UserID,
		Action: action, Outcome: outcome, Message: msg, CreatedAt: time.Now(),
	})
	if err != nil {
		s.log.Error("audit record failed", append(fields, zap.Error(err))...)
	}
}

// Audit 审计未启用时返回空列表
func (s *MembershipService) Audit(ctx context.Context, roleID string, offset, limit int) ([]domain.AuditEntry, int64, error) {
	if s.audit == nil {
		return []domain.AuditEntry{}, 0, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.audit.ListByRole(ctx, roleID, max(0, offset), limit)
}

func displayName(users []domain.User, id string) string {
	for _, u := range users {
		if u.ID == id {
			return u.FullName()
		}
	}
	return id
}

func successMsgID(a domain.MutationAction) string {
	if a == domain.ActionAssign {
		return i18n.MsgAssigned
	}
	return i18n.MsgRemoved
}

func failedMsgID(a domain.MutationAction) string {
	if a == domain.ActionAssign {
		return i18n.MsgAssignFailed
	}
	return i18n.MsgRemoveFailed
}

// IsPending 供 transport 层映射 409
func IsPending(err error) bool { return errors.Is(err, ErrMutationPending) }
