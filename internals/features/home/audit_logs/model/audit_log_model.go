package model

import (
	"time"

	"github.com/google/uuid"
)

// Aksi yang diaudit
const (
	ActionCreateMarks   = "CREATE_MARKS"
	ActionUpdateMarks   = "UPDATE_MARKS"
	ActionApproveMarks  = "APPROVE_MARKS"
	ActionRejectMarks   = "REJECT_MARKS"
	ActionEditFeedback  = "EDIT_FEEDBACK"
	ActionAssignTeacher = "ASSIGN_TEACHER"
	ActionRemoveTeacher = "REMOVE_TEACHER"
)

// AuditLogModel: append-only, tidak pernah diubah atau dihapus.
type AuditLogModel struct {
	AuditLogID         uuid.UUID `gorm:"column:audit_log_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"audit_log_id"`
	AuditLogUserID     uuid.UUID `gorm:"column:audit_log_user_id;type:uuid;not null;index" json:"audit_log_user_id"`
	AuditLogAction     string    `gorm:"column:audit_log_action;type:varchar(50);not null;index" json:"audit_log_action"`
	AuditLogEntityType string    `gorm:"column:audit_log_entity_type;type:varchar(50);not null" json:"audit_log_entity_type"`
	AuditLogEntityID   uuid.UUID `gorm:"column:audit_log_entity_id;type:uuid;not null" json:"audit_log_entity_id"`
	AuditLogRemarks    string    `gorm:"column:audit_log_remarks;type:text" json:"audit_log_remarks"`
	AuditLogCreatedAt  time.Time `gorm:"column:audit_log_created_at;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
