package models

import (
	"strings"
	"time"

	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
)

type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// User is a member of a tenant. PasswordHash is never serialized.
type User struct {
	ID           id.UserID   `json:"id"`
	TenantID     id.TenantID `json:"tenantId"`
	Email        string      `json:"email"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Status       UserStatus  `json:"status"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CreateUserInput provisions a new user. First and last name are optional;
// when omitted they are derived from the email's local part.
type CreateUserInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	return nil
}

// UpdateUserInput is the submitted update shape; the audit diff projects the
// prior state onto it.
type UpdateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (in UpdateUserInput) Validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return dErrors.New(dErrors.CodeValidation, "first name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return dErrors.New(dErrors.CodeValidation, "last name is required")
	}
	return nil
}

func (u *User) Snapshot() UpdateUserInput {
	return UpdateUserInput{FirstName: u.FirstName, LastName: u.LastName}
}

func (u *User) Apply(in UpdateUserInput) {
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
}
