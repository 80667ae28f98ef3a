package models

import "time"

// UserStatus tracks the signup lifecycle. The only transitions are
// pending -> approved (admin approval) and pending -> deleted (rejection).
type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusAdmin    UserStatus = "admin"
)

// AdminAccountID is the sentinel identity used by the shared-secret admin
// login. It is never persisted in the users table.
const AdminAccountID = "admin-account"

// User represents a student account stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Phone        string     `db:"phone" json:"phone"`
	Academy      string     `db:"academy" json:"academy"`
	Status       UserStatus `db:"status" json:"status"`
	PasswordHash string     `db:"password_hash" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt   *time.Time `db:"approved_at" json:"approved_at,omitempty"`
}

// CanAccess reports whether a status grants entry to the gated student
// areas (contents, resources, videos, Q&A).
func CanAccess(status UserStatus) bool {
	return status == StatusApproved || status == StatusAdmin
}
