package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 100

// Team is a working group of users inside a tenant.
type Team struct {
	ID          id.TeamID   `json:"id"`
	TenantID    id.TenantID `json:"tenantId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type UpdateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in UpdateTeamInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "team name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "team name must be at most %d characters", maxNameLength)
	}
	return nil
}

func (t *Team) Snapshot() UpdateTeamInput {
	return UpdateTeamInput{Name: t.Name, Description: t.Description}
}

func (t *Team) Apply(in UpdateTeamInput) {
	t.Name = strings.TrimSpace(in.Name)
	t.Description = in.Description
}
