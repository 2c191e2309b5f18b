package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "steward/pkg/domain-errors"
)

func stubDecoder(message string) Decoder {
	return func(json.RawMessage) (Item, error) {
		return Item{Message: message}, nil
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("merges registration sets", func(t *testing.T) {
		reg, err := NewRegistry(
			[]Registration{{Kind: "department_updated", Version: 1, Decode: stubDecoder("dept")}},
			[]Registration{{Kind: "team_updated", Version: 1, Decode: stubDecoder("team")}},
		)
		require.NoError(t, err)

		_, ok := reg.Resolve("department_updated", 1)
		assert.True(t, ok)
		_, ok = reg.Resolve("team_updated", 1)
		assert.True(t, ok)
	})

	t.Run("same kind may carry multiple versions", func(t *testing.T) {
		reg, err := NewRegistry([]Registration{
			{Kind: "user_updated", Version: 1, Decode: stubDecoder("v1")},
			{Kind: "user_updated", Version: 2, Decode: stubDecoder("v2")},
		})
		require.NoError(t, err)

		_, ok := reg.Resolve("user_updated", 1)
		assert.True(t, ok)
		_, ok = reg.Resolve("user_updated", 2)
		assert.True(t, ok)
	})

	t.Run("rejects duplicate kind and version", func(t *testing.T) {
		_, err := NewRegistry([]Registration{
			{Kind: "user_updated", Version: 1, Decode: stubDecoder("a")},
			{Kind: "user_updated", Version: 1, Decode: stubDecoder("b")},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects nil decoder", func(t *testing.T) {
		_, err := NewRegistry([]Registration{{Kind: "user_updated", Version: 1}})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestRegistryReconstruct(t *testing.T) {
	reg, err := NewRegistry([]Registration{
		{Kind: "department_updated", Version: 1, Decode: func(raw json.RawMessage) (Item, error) {
			var p struct {
				ActorFullName string    `json:"actorFullName"`
				Date          time.Time `json:"date"`
			}
			if err := json.Unmarshal(raw, &p); err != nil {
				return Item{}, err
			}
			return Item{Date: p.Date, ActorFullName: p.ActorFullName, Message: "Department details updated"}, nil
		}},
	})
	require.NoError(t, err)

	t.Run("dispatches to the registered decoder", func(t *testing.T) {
		item, err := reg.Reconstruct(Envelope{
			Kind:    "department_updated",
			Version: 1,
			Payload: json.RawMessage(`{"actorFullName":"Ada Lovelace","date":"2026-02-01T10:00:00Z"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", item.ActorFullName)
		assert.Equal(t, "Department details updated", item.Message)
	})

	t.Run("unknown kind fails with unknown_event_shape", func(t *testing.T) {
		_, err := reg.Reconstruct(Envelope{Kind: "division_updated", Version: 1, Payload: json.RawMessage(`{}`)})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownEventShape))
	})

	t.Run("unknown version of a known kind fails with unknown_event_shape", func(t *testing.T) {
		_, err := reg.Reconstruct(Envelope{Kind: "department_updated", Version: 7, Payload: json.RawMessage(`{}`)})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownEventShape))
	})

	t.Run("undecodable payload fails with unknown_event_shape", func(t *testing.T) {
		_, err := reg.Reconstruct(Envelope{Kind: "department_updated", Version: 1, Payload: json.RawMessage(`not json`)})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownEventShape))
	})
}
