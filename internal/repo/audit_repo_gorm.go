package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/feature/audit"
	"github.com/CultivBureau/RwafiWorkHole-sub004/pkg/utils"
)

type AuditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Migrate() error { return r.db.AutoMigrate(&audit.MembershipAuditModel{}) }

func (r *AuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	if e.ID == "" {
		e.ID = utils.NewID()
	}
	m := audit.MembershipAuditModel{
		ID:        e.ID,
		Actor:     e.Actor,
		RoleID:    e.RoleID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		Outcome:   string(e.Outcome),
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.CreatedAt = m.CreatedAt
	return nil
}

func (r *AuditRepo) ListByRole(ctx context.Context, roleID string, offset, limit int) ([]domain.AuditEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&audit.MembershipAuditModel{}).
		Where("role_id = ?", roleID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ms []audit.MembershipAuditModel
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.AuditEntry, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.AuditEntry{
			ID: m.ID, Actor: m.Actor, RoleID: m.RoleID, UserID: m.UserID,
			Action: domain.MutationAction(m.Action), Outcome: domain.Outcome(m.Outcome),
			Message: m.Message, CreatedAt: m.CreatedAt,
		})
	}
	return out, total, nil
}

var _ domain.AuditRepository = (*AuditRepo)(nil)
