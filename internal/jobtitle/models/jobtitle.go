package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

const maxNameLength = 100

// JobTitle is a position users hold inside a tenant.
type JobTitle struct {
	ID          id.JobTitleID `json:"id"`
	TenantID    id.TenantID   `json:"tenantId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type UpdateJobTitleInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in UpdateJobTitleInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "job title name is required")
	}
	if len(name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "job title name must be at most %d characters", maxNameLength)
	}
	return nil
}

func (jt *JobTitle) Snapshot() UpdateJobTitleInput {
	return UpdateJobTitleInput{Name: jt.Name, Description: jt.Description}
}

func (jt *JobTitle) Apply(in UpdateJobTitleInput) {
	jt.Name = strings.TrimSpace(in.Name)
	jt.Description = in.Description
}
