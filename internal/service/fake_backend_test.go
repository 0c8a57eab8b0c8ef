package service

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
)

// fakeHR 内存版 HR 后端；成员关系只记在 members 里
type fakeHR struct {
	mu      sync.Mutex
	roles   map[string]*domain.Role
	users   []domain.User
	members map[string][]string

	usersErr   error
	membersErr error
	mutateErr  error
	listErr    error
	roleErr    error
	block      chan struct{} // 非 nil 时变更会等它关闭

	userFetches   atomic.Int32
	memberFetches atomic.Int32
	stats         atomic.Int32
}

func newFakeHR() *fakeHR {
	return &fakeHR{
		roles: map[string]*domain.Role{
			"r1": {ID: "r1", Name: "Manager", Status: domain.RoleActive},
			"r2": {ID: "r2", Name: "Viewer", Status: domain.RoleInactive},
		},
		users: []domain.User{
			{ID: "A", FirstName: "Amal", LastName: "Haddad", Email: "amal@rwafi.io", Roles: []string{"Manager"}},
			{ID: "B", FirstName: "Basel", LastName: "Omar", Email: "basel@rwafi.io"},
			{ID: "C", FirstName: "Carla", LastName: "Nunes", Email: "carla@rwafi.io"},
		},
		members: map[string][]string{"r1": {"C"}},
	}
}

func (f *fakeHR) GetRole(_ context.Context, id string) (*domain.Role, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[id]
	if !ok {
		return nil, &hrapi.Error{Status: 404, Message: "role not found"}
	}
	cp := *r
	return &cp, nil
}

func (f *fakeHR) GetRoleMembers(_ context.Context, roleID string, _, _ int) ([]domain.RoleMember, error) {
	f.memberFetches.Add(1)
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.RoleMember, 0)
	for _, id := range f.members[roleID] {
		out = append(out, domain.RoleMember{UserIDField: id})
	}
	return out, nil
}

func (f *fakeHR) ListRoles(_ context.Context, q domain.RoleQuery) ([]domain.Role, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Role, 0)
	for _, id := range []string{"r1", "r2"} {
		r := f.roles[id]
		if r != nil && (q.Status == "" || r.Status == q.Status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeHR) ListUsers(_ context.Context, _ domain.UserQuery) ([]domain.User, error) {
	f.userFetches.Add(1)
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.users), nil
}

func (f *fakeHR) ListDepartments(context.Context, int, int) ([]domain.Department, error) {
	return []domain.Department{{ID: "d1", Name: "Engineering"}}, nil
}

func (f *fakeHR) ListTeams(_ context.Context, dep string) ([]domain.Team, error) {
	return []domain.Team{{ID: dep + "-t1", Name: "Platform"}}, nil
}

func (f *fakeHR) RoleStats(context.Context) (domain.RoleStats, error) {
	f.stats.Add(1)
	return domain.RoleStats{"totalRoles": 2, "activeRoles": 1}, nil
}

func (f *fakeHR) RolePermissions(_ context.Context, id string) ([]domain.Permission, error) {
	if _, err := f.GetRole(context.Background(), id); err != nil {
		return nil, err
	}
	return []domain.Permission{{ID: "p1", Name: "roles.read"}}, nil
}

func (f *fakeHR) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeHR) AssignUser(_ context.Context, roleID, userID string) error {
	f.wait()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[roleID] = append(f.members[roleID], userID)
	return nil
}

func (f *fakeHR) RemoveUser(_ context.Context, roleID, userID string) error {
	f.wait()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[roleID] = slices.DeleteFunc(f.members[roleID], func(id string) bool { return id == userID })
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Roles = slices.DeleteFunc(f.users[i].Roles, func(n string) bool { return n == f.roles[roleID].Name })
		}
	}
	return nil
}

func (f *fakeHR) CreateRole(context.Context, domain.RoleInput) error { return f.mutateErr }

func (f *fakeHR) UpdateRole(_ context.Context, id string, _ domain.RoleInput) error {
	if _, err := f.GetRole(context.Background(), id); err != nil {
		return err
	}
	return f.mutateErr
}

func (f *fakeHR) DeleteRole(context.Context, string) error  { return f.mutateErr }
func (f *fakeHR) RestoreRole(context.Context, string) error { return f.mutateErr }

var _ domain.HRBackend = (*fakeHR)(nil)

type fakeAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (a *fakeAudit) Record(_ context.Context, e *domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, *e)
	return nil
}

func (a *fakeAudit) ListByRole(_ context.Context, roleID string, offset, limit int) ([]domain.AuditEntry, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditEntry, 0)
	for _, e := range a.entries {
		if e.RoleID == roleID {
			out = append(out, e)
		}
	}
	total := int64(len(out))
	lo := min(offset, len(out))
	return out[lo:min(lo+limit, len(out))], total, nil
}
