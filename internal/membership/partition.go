package membership

import "github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"

// Groups 稳定划分的两组：有角色在前，无角色在后
type Groups struct {
	WithRole    []domain.User
	WithoutRole []domain.User
}

// Partition 稳定划分，组内保持原有相对顺序；不是排序，没有第二排序键
func Partition(users []domain.User, pred func(domain.User) bool) Groups {
	g := Groups{
		WithRole:    make([]domain.User, 0),
		WithoutRole: make([]domain.User, 0),
	}
	for _, u := range users {
		if pred(u) {
			g.WithRole = append(g.WithRole, u)
		} else {
			g.WithoutRole = append(g.WithoutRole, u)
		}
	}
	return g
}

func (g Groups) Len() int { return len(g.WithRole) + len(g.WithoutRole) }

// Ordered withRole ++ withoutRole
func (g Groups) Ordered() []domain.User {
	out := make([]domain.User, 0, g.Len())
	out = append(out, g.WithRole...)
	return append(out, g.WithoutRole...)
}

// Slice 按窗口取出本页两组各自的行
func (g Groups) Slice(p Page) (with, without []domain.User) {
	return g.WithRole[p.With.Lo:p.With.Hi], g.WithoutRole[p.Without.Lo:p.Without.Hi]
}
