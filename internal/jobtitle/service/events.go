package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const KindJobTitleUpdated activity.Kind = "job_title_updated"

type jobTitleUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindJobTitleUpdated, Version: 1, Decode: decodeJobTitleUpdatedV1},
	}
}

func decodeJobTitleUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p jobTitleUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Job title details updated",
	}, nil
}
