package service

import (
	"encoding/json"
	"fmt"

	"steward/internal/activity"
)

const (
	KindUserCreated         activity.Kind = "user_created"
	KindUserUpdated         activity.Kind = "user_updated"
	KindUserDeactivated     activity.Kind = "user_deactivated"
	KindUserReactivated     activity.Kind = "user_reactivated"
	KindUserCredentialsSent activity.Kind = "user_credentials_sent"
)

type userCreatedV1 struct {
	activity.Stamp
	Email string `json:"email"`
}

type userUpdatedV1 struct {
	activity.Stamp
	activity.UpdateDiff
}

// userStatusV1 covers deactivation and reactivation; both carry only the
// actor stamp.
type userStatusV1 struct {
	activity.Stamp
}

type userCredentialsSentV1 struct {
	activity.Stamp
	Email string `json:"email"`
}

func Decoders() []activity.Registration {
	return []activity.Registration{
		{Kind: KindUserCreated, Version: 1, Decode: decodeUserCreatedV1},
		{Kind: KindUserUpdated, Version: 1, Decode: decodeUserUpdatedV1},
		{Kind: KindUserDeactivated, Version: 1, Decode: statusDecoder("User deactivated")},
		{Kind: KindUserReactivated, Version: 1, Decode: statusDecoder("User reactivated")},
		{Kind: KindUserCredentialsSent, Version: 1, Decode: decodeUserCredentialsSentV1},
	}
}

func decodeUserCreatedV1(raw json.RawMessage) (activity.Item, error) {
	var p userCreatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       fmt.Sprintf("User created with email %s", p.Email),
	}, nil
}

func decodeUserUpdatedV1(raw json.RawMessage) (activity.Item, error) {
	var p userUpdatedV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       "User details updated",
	}, nil
}

func statusDecoder(message string) activity.Decoder {
	return func(raw json.RawMessage) (activity.Item, error) {
		var p userStatusV1
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

func decodeUserCredentialsSentV1(raw json.RawMessage) (activity.Item, error) {
	var p userCredentialsSentV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return activity.Item{}, err
	}
	return activity.Item{
		Date:          p.Date,
		ActorFullName: p.ActorFullName,
		ActorRoles:    p.ActorRoles,
		Message:       fmt.Sprintf("Credentials sent to %s", p.Email),
	}, nil
}
