package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 100

// Division is a top-level grouping of departments inside a tenant.
type Division struct {
	ID          id.DivisionID `json:"id"`
	TenantID    id.TenantID   `json:"tenantId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type UpdateDivisionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in UpdateDivisionInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "division name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "division name must be at most %d characters", maxNameLength)
	}
	return nil
}

func (d *Division) Snapshot() UpdateDivisionInput {
	return UpdateDivisionInput{Name: d.Name, Description: d.Description}
}

func (d *Division) Apply(in UpdateDivisionInput) {
	d.Name = strings.TrimSpace(in.Name)
	d.Description = in.Description
}
