package service

import (
	"errors"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
)

var (
	ErrRoleNotFound    = errors.New("role not found")
	ErrMutationPending = errors.New("membership change already in progress")
)

// MutationError 成员变更失败；Message 是给界面显示的本地化文案（优先后端 errorMessage）
type MutationError struct {
	Action  domain.MutationAction
	Message string
	Err     error
}

func (e *MutationError) Error() string { return string(e.Action) + " failed: " + e.Message }

func (e *MutationError) Unwrap() error { return e.Err }

// roleOrNotFound 后端 404 或 value 为 null（解出空角色）都算角色不存在
func roleOrNotFound(r *domain.Role, err error) (*domain.Role, error) {
	if hrapi.IsNotFound(err) || (err == nil && (r == nil || r.ID == "")) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
