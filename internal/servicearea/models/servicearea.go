package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 100

// ServiceArea is a line of service offered by a tenant.
type ServiceArea struct {
	ID          id.ServiceAreaID `json:"id"`
	TenantID    id.TenantID      `json:"tenantId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type UpdateServiceAreaInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in UpdateServiceAreaInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "service area name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "service area name must be at most %d characters", maxNameLength)
	}
	return nil
}

func (sa *ServiceArea) Snapshot() UpdateServiceAreaInput {
	return UpdateServiceAreaInput{Name: sa.Name, Description: sa.Description}
}

func (sa *ServiceArea) Apply(in UpdateServiceAreaInput) {
	sa.Name = strings.TrimSpace(in.Name)
	sa.Description = in.Description
}
