package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 100

// Department groups users and service areas inside a tenant, optionally
// under a division.
type Department struct {
	ID          id.DepartmentID `json:"id"`
	TenantID    id.TenantID     `json:"tenantId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DivisionID  *id.DivisionID  `json:"divisionId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UpdateDepartmentInput is the submitted update shape. The audit diff
// snapshots both the prior state and the submitted input projected to this
// shape.
type UpdateDepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in UpdateDepartmentInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "department name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "department name must be at most %d characters", maxNameLength)
	}
	return nil
}

// Snapshot projects the current state to the update shape for diff capture.
func (d *Department) Snapshot() UpdateDepartmentInput {
	return UpdateDepartmentInput{Name: d.Name, Description: d.Description}
}

// Apply writes the submitted input onto the department.
func (d *Department) Apply(in UpdateDepartmentInput) {
	d.Name = strings.TrimSpace(in.Name)
	d.Description = in.Description
}
