package activity

import (
	"encoding/json"

	dErrors "steward/pkg/domain-errors"
)

// Decoder turns a frozen payload into a display-ready activity item.
//
// Decoders must be pure: no I/O, no current time, no current user. They only
// transform the bytes that were serialized at write time, so reconstruction
// of arbitrarily old records is deterministic.
type Decoder func(payload json.RawMessage) (Item, error)

// Registration binds one (kind, version) pair to its decoder. Family
// packages export their registrations; main merges them into one Registry.
type Registration struct {
	Kind    Kind
	Version uint32
	Decode  Decoder
}

type registryKey struct {
	kind    Kind
	version uint32
}

// Registry resolves a (kind, version) pair to its payload decoder. It is
// built once at process startup and read-only afterwards, so concurrent
// reads need no locking. A partially built registry must never serve
// requests; NewRegistry fails fast instead.
type Registry struct {
	decoders map[registryKey]Decoder
}

// NewRegistry merges the registrations of every entity family into one
// immutable registry. Registering two decoders for the same (kind, version)
// is a startup configuration error.
func NewRegistry(sets ...[]Registration) (*Registry, error) {
	decoders := make(map[registryKey]Decoder)
	for _, set := range sets {
		for _, reg := range set {
			if reg.Decode == nil {
				return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
					"nil decoder registered for %s v%d", reg.Kind, reg.Version)
			}
			key := registryKey{kind: reg.Kind, version: reg.Version}
			if _, exists := decoders[key]; exists {
				return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
					"duplicate decoder registered for %s v%d", reg.Kind, reg.Version)
			}
			decoders[key] = reg.Decode
		}
	}
	return &Registry{decoders: decoders}, nil
}

// Resolve returns the decoder for the exact (kind, version) pair.
// There is no fallback across versions: guessing would mis-render
// historical audit data.
func (r *Registry) Resolve(kind Kind, version uint32) (Decoder, bool) {
	d, ok := r.decoders[registryKey{kind: kind, version: version}]
	return d, ok
}

// Reconstruct decodes one envelope into an activity item.
//
// A missing decoder is a data/deployment consistency defect (a reader older
// than the writer, or corrupted rows); it is surfaced as unknown_event_shape
// rather than silently dropping the record.
func (r *Registry) Reconstruct(env Envelope) (Item, error) {
	decode, ok := r.Resolve(env.Kind, env.Version)
	if !ok {
		return Item{}, dErrors.Newf(dErrors.CodeUnknownEventShape,
			"no decoder registered for event %s v%d", env.Kind, env.Version)
	}
	item, err := decode(env.Payload)
	if err != nil {
		return Item{}, dErrors.Wrap(err, dErrors.CodeUnknownEventShape,
			"decode activity payload")
	}
	return item, nil
}
