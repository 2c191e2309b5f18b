package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const KindServiceAreaUpdated activity.Kind = "service_area_updated"

type serviceAreaUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindServiceAreaUpdated, Version: 1, Decode: decodeServiceAreaUpdatedV1},
	}
}

func decodeServiceAreaUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p serviceAreaUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Service area details updated",
	}, nil
}
