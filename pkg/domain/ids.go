// Package domain defines typed identifiers shared across feature packages.
//
// IDs are distinct named UUID types so the compiler rejects cross-entity
// assignment (a DepartmentID can never be passed where a UserID is expected).
// Construct from external input via the Parse* functions, which enforce the
// invariant that an ID is a valid, non-nil UUID.
package domain

import (
	"github.com/google/uuid"

	dErrors "steward/pkg/domain-errors"
)

type (
	TenantID      uuid.UUID
	UserID        uuid.UUID
	RoleID        uuid.UUID
	DepartmentID  uuid.UUID
	DivisionID    uuid.UUID
	ServiceAreaID uuid.UUID
	JobTitleID    uuid.UUID
	TeamID        uuid.UUID
)

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}

func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s)
	return TenantID(u), err
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

func ParseRoleID(s string) (RoleID, error) {
	u, err := parseUUID(s)
	return RoleID(u), err
}

func ParseDepartmentID(s string) (DepartmentID, error) {
	u, err := parseUUID(s)
	return DepartmentID(u), err
}

func ParseDivisionID(s string) (DivisionID, error) {
	u, err := parseUUID(s)
	return DivisionID(u), err
}

func ParseServiceAreaID(s string) (ServiceAreaID, error) {
	u, err := parseUUID(s)
	return ServiceAreaID(u), err
}

func ParseJobTitleID(s string) (JobTitleID, error) {
	u, err := parseUUID(s)
	return JobTitleID(u), err
}

func ParseTeamID(s string) (TeamID, error) {
	u, err := parseUUID(s)
	return TeamID(u), err
}

func (id TenantID) String() string      { return uuid.UUID(id).String() }
func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id RoleID) String() string        { return uuid.UUID(id).String() }
func (id DepartmentID) String() string  { return uuid.UUID(id).String() }
func (id DivisionID) String() string    { return uuid.UUID(id).String() }
func (id ServiceAreaID) String() string { return uuid.UUID(id).String() }
func (id JobTitleID) String() string    { return uuid.UUID(id).String() }
func (id TeamID) String() string        { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RoleID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id DepartmentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DivisionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ServiceAreaID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id JobTitleID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id TeamID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
