package domain

import (
	"context"
	"time"
)

type MutationAction string

const (
	ActionAssign MutationAction = "assign"
	ActionRemove MutationAction = "remove"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// AuditEntry 一次成员变更的结果记录
type AuditEntry struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	RoleID    string         `json:"roleId"`
	UserID    string         `json:"userId"`
	Action    MutationAction `json:"action"`
	Outcome   Outcome        `json:"outcome"`
	Message   string         `json:"message,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type AuditRepository interface {
	Record(ctx context.Context, e *AuditEntry) error
	ListByRole(ctx context.Context, roleID string, offset, limit int) ([]AuditEntry, int64, error)
}
