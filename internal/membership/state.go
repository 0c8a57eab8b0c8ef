package membership

import (
	"context"
	"strings"
)

// FilterState 成员页视图状态：挂载时创建；搜索/部门/团队变化回到第 1 页；部门变化清空团队
type FilterState struct {
	Search       string `json:"search"`
	DepartmentID string `json:"departmentId"`
	TeamID       string `json:"teamId"`
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
}

func NewFilterState(pageSize int) FilterState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterState{DepartmentID: AllID, TeamID: AllID, Page: 1, PageSize: pageSize}
}

func normID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return AllID
	}
	return id
}

// SetSearch 值变化返回 true
func (s *FilterState) SetSearch(q string) bool {
	if s.Search == q {
		return false
	}
	s.Search = q
	s.Page = 1
	return true
}

func (s *FilterState) SetDepartment(id string) bool {
	id = normID(id)
	if s.DepartmentID == id {
		return false
	}
	s.DepartmentID = id
	s.TeamID = AllID // 团队从属于部门
	s.Page = 1
	return true
}

func (s *FilterState) SetTeam(id string) bool {
	id = normID(id)
	if s.TeamID == id {
		return false
	}
	s.TeamID = id
	s.Page = 1
	return true
}

func (s *FilterState) SetPage(page, totalPages int) { s.Page = ClampPage(page, totalPages) }

func (s *FilterState) Next(totalPages int) { s.Page = Next(s.Page, totalPages) }

func (s *FilterState) Prev(totalPages int) { s.Page = Prev(s.Page, totalPages) }

func (s FilterState) Filter() Filter {
	return Filter{Search: s.Search, DepartmentID: s.DepartmentID, TeamID: s.TeamID}
}

type Nav string

const (
	NavNone Nav = ""
	NavNext Nav = "next"
	NavPrev Nav = "prev"
)

// Change 一次请求携带的修改，nil 表示不变
type Change struct {
	Search       *string
	DepartmentID *string
	TeamID       *string
	Page         *int
	Nav          Nav
}

// ApplyFilters 先改过滤条件（搜索 → 部门 → 团队），返回是否有变化。
// 页码/翻页需要总页数，由调用方在过滤之后通过 ApplyPaging 处理。
func (s *FilterState) ApplyFilters(c Change) bool {
	changed := false
	if c.Search != nil && s.SetSearch(*c.Search) {
		changed = true
	}
	if c.DepartmentID != nil && s.SetDepartment(*c.DepartmentID) {
		changed = true
	}
	if c.TeamID != nil && s.SetTeam(*c.TeamID) {
		changed = true
	}
	return changed
}

// ApplyPaging 同一次修改里过滤条件变了则忽略页码/翻页（保持第 1 页）；否则先跳页再翻页，最后钳制
func (s *FilterState) ApplyPaging(c Change, filtersChanged bool, totalPages int) {
	if !filtersChanged {
		if c.Page != nil {
			s.Page = *c.Page
		}
		switch c.Nav {
		case NavNext:
			s.Page = ClampPage(s.Page, totalPages)
			s.Next(totalPages)
		case NavPrev:
			s.Page = ClampPage(s.Page, totalPages)
			s.Prev(totalPages)
		}
	}
	s.SetPage(s.Page, totalPages)
}

// StateStore 按 key（操作人+角色）保存视图状态
type StateStore interface {
	Load(ctx context.Context, key string) (FilterState, bool, error)
	Save(ctx context.Context, key string, s FilterState) error
}

func StateKey(actor, roleID string) string { return "rolemembers:view:" + actor + ":" + roleID }
