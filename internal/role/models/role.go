package models

import (
	"time"

	id "steward/pkg/domain"
)

// Role is a named permission set users can be assigned to within a tenant.
type Role struct {
	ID        id.RoleID   `json:"id"`
	TenantID  id.TenantID `json:"tenantId"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Assignment links a role to a user.
type Assignment struct {
	RoleID id.RoleID `json:"roleId"`
	UserID id.UserID `json:"userId"`
}
