package domain

// Ref 部门/团队引用（id+name）
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User HR 后端返回的用户，本服务只读
type User struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Departments []Ref    `json:"departments"`
	Teams       []Ref    `json:"teams"`
}

func (u User) FullName() string { return u.FirstName + " " + u.LastName }

func (u User) InDepartment(id string) bool { return hasRef(u.Departments, id) }

func (u User) InTeam(id string) bool { return hasRef(u.Teams, id) }

func hasRef(refs []Ref, id string) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// UserQuery 后端用户列表过滤条件（为空则不过滤）
type UserQuery struct {
	Page         int
	PageSize     int
	Name         string
	DepartmentID string
	TeamID       string
}
