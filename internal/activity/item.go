package activity

import "time"

// Item is the read-side, human-facing representation of one envelope.
// Its shape is versionless: decoders for every payload version produce this
// same DTO, so callers never see schema versions.
type Item struct {
	Date          time.Time `json:"date"`
	ActorFullName string    `json:"actorFullName"`
	ActorRoles    []string  `json:"actorRoles"`
	Message       string    `json:"message"`
}

// Page is one page of reconstructed activity for a single entity.
// PageCount is ceil(totalMatchingEnvelopes / pageSize) regardless of which
// page was requested, so callers can render pagination controls from any
// page, including an out-of-range one.
type Page struct {
	PageCount uint   `json:"pageCount"`
	Items     []Item `json:"items"`
}
