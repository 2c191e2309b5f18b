package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const KindTeamUpdated activity.Kind = "team_updated"

type teamUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindTeamUpdated, Version: 1, Decode: decodeTeamUpdatedV1},
	}
}

func decodeTeamUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p teamUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Team details updated",
	}, nil
}
