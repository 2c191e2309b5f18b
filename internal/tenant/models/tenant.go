package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 128

// Tenant is one customer organization. All managed entities and all activity
// envelopes are scoped to a tenant.
type Tenant struct {
	ID        id.TenantID `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
}

type UpdateTenantInput struct {
	Name string `json:"name"`
}

func (in UpdateTenantInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "tenant name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "tenant name must be at most %d characters", maxNameLength)
	}
	return nil
}

func (t *Tenant) Snapshot() UpdateTenantInput {
	return UpdateTenantInput{Name: t.Name}
}

func (t *Tenant) Apply(in UpdateTenantInput) {
	t.Name = strings.TrimSpace(in.Name)
}
