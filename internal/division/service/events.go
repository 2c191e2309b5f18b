package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const KindDivisionUpdated activity.Kind = "division_updated"

type divisionUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindDivisionUpdated, Version: 1, Decode: decodeDivisionUpdatedV1},
	}
}

func decodeDivisionUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p divisionUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Division details updated",
	}, nil
}
