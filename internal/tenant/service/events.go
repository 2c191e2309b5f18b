package service

import (
	"encoding/json"

	"steward/internal/activity"
)

const (
	KindTenantUpdated activity.Kind = "tenant_updated"
	KindTenantEntered activity.Kind = "tenant_entered"
	KindTenantExited  activity.Kind = "tenant_exited"
)

type tenantUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

// tenantEnteredV1 doubles for exit events; both carry only the actor stamp.
type tenantEnteredV1 struct {
	activity.Stamp
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindTenantUpdated, Version: 1, Decode: decodeTenantUpdatedV1},
		{Kind: KindTenantEntered, Version: 1, Decode: stampDecoder("Entered the tenant")},
		{Kind: KindTenantExited, Version: 1, Decode: stampDecoder("Exited the tenant")},
	}
}

func decodeTenantUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p tenantUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "Tenant details updated",
	}, nil
}

func stampDecoder(message string) activity.Decoder {
	return func(raw json.RawMessage) (activity.Item, error) {
		var p tenantEnteredV1
		if err := json.Unmarshal(raw, &p); err != nil {
			return activity.Item{}, err
		}
		return activity.Item{
			Date:          p.Date,
			ActorFullName: p.ActorFullName,
			ActorRoles:    p.ActorRoles,
			Message:       message,
		}, nil
	}
}
