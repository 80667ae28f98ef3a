package models

import "time"

// Audit actions recorded for admin mutations.
const (
	AuditActionAdminLogin  = "ADMIN_LOGIN"
	AuditActionApproveUser = "APPROVE_USER"
	AuditActionRejectUser  = "REJECT_USER"
	AuditActionSaveSetting = "SAVE_SETTING"
	AuditActionCreateItem  = "CREATE_ITEM"
	AuditActionDeleteItem  = "DELETE_ITEM"
	AuditActionReplyQnA    = "REPLY_QNA"
	AuditActionExport      = "EXPORT_REPORT"
)

// AuditLog records who changed what through the admin surface.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
