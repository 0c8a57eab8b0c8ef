package audit

import "time"

// MembershipAuditModel 角色成员变更审计表
type MembershipAuditModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Actor     string    `gorm:"size:64;not null"`
	RoleID    string    `gorm:"size:64;not null;index:idx_role_created,priority:1"`
	UserID    string    `gorm:"size:64;not null"`
	Action    string    `gorm:"size:16;not null"`
	Outcome   string    `gorm:"size:16;not null"`
	Message   string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_role_created,priority:2"`
}

func (MembershipAuditModel) TableName() string { return "role_membership_audit" }
