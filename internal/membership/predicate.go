// Package membership 角色成员页的纯计算部分：成员判定、过滤、两组排序、分页窗口、过滤状态。
// 所有函数都是同步的，每次请求从头推导，不持有跨请求的可变状态（过滤状态除外，见 state.go）。
package membership

import "github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"

// MemberSet 来自“角色成员”接口的用户 id 集合
type MemberSet map[string]struct{}

func NewMemberSet(rows []domain.RoleMember) MemberSet {
	s := make(MemberSet, len(rows))
	for _, r := range rows {
		if id := r.UserID(); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s MemberSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IsMember 两个来源任一为真即视为持有角色：成员接口里有该 id，或用户自身的角色名列表里有 roleName。
// 两个来源不一致时不报错，按“或”处理。
func IsMember(u domain.User, set MemberSet, roleName string) bool {
	if set.Has(u.ID) {
		return true
	}
	if roleName == "" {
		return false
	}
	for _, r := range u.Roles {
		if r == roleName {
			return true
		}
	}
	return false
}

// Predicate 绑定成员集合与角色名，供 Partition 使用
func Predicate(set MemberSet, roleName string) func(domain.User) bool {
	return func(u domain.User) bool { return IsMember(u, set, roleName) }
}
