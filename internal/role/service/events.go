package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"steward/internal/activity"
)

// Role membership changes are recorded on the affected user's activity
// stream, not on the role itself.
const (
	KindUserRolesAssigned   activity.Kind = "user_roles_assigned"
	KindUserRolesUnassigned activity.Kind = "user_roles_unassigned"
)

type rolesChangedV1 struct {
	activity.Stamp
	Roles []string `json:"roles"`
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindUserRolesAssigned, Version: 1, Decode: rolesDecoder("User has been assigned to the following roles: %s")},
		{Kind: KindUserRolesUnassigned, Version: 1, Decode: rolesDecoder("User has been unassigned from the following roles: %s")},
	}
}

func rolesDecoder(format string) activity.Decoder {
	return func(raw json.RawMessage) (activity.Item, error) {
		var p rolesChangedV1
		if err := json.Unmarshal(raw, &p); err != nil {
			return activity.Item{}, err
		}
		return activity.Item{
			Date:          p.Date,
			ActorFullName: p.ActorFullName,
			ActorRoles:    p.ActorRoles,
			Message:       fmt.Sprintf(format, strings.Join(p.Roles, ", ")),
		}, nil
	}
}
