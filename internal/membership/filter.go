package membership

import (
	"strings"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
)

// AllID 部门/团队选择器的“全部”
const AllID = "all"

func isAll(id string) bool { return id == "" || id == AllID }

// Filter 搜索 + 部门 + 团队，三者按 AND 组合
type Filter struct {
	Search       string
	DepartmentID string
	TeamID       string
}

// Apply 返回新切片，不修改入参。团队过滤只在选定部门时生效。
func (f Filter) Apply(users []domain.User) []domain.User {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	dept := f.DepartmentID
	team := f.TeamID
	if isAll(dept) {
		team = AllID
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if term != "" && !matchesSearch(u, term) {
			continue
		}
		if !isAll(dept) && !u.InDepartment(dept) {
			continue
		}
		if !isAll(team) && !u.InTeam(team) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// term 已小写
func matchesSearch(u domain.User, term string) bool {
	return strings.Contains(strings.ToLower(u.FullName()), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}
