package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const KindDepartmentUpdated activity.Kind = "department_updated"

// departmentUpdatedV1 is the version-1 payload for KindDepartmentUpdated.
// Shipped shapes are frozen; an incompatible change gets a new version and a
// new decoder, never an edit here.
type departmentUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

// Decoders returns the department family's reconstructor registrations.
func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindDepartmentUpdated, Version: 1, Decode: decodeDepartmentUpdatedV1},
	}
}

func decodeDepartmentUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p departmentUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Department details updated",
	}, nil
}
