package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	dErrors "steward/pkg/domain-errors"
)

// Filter is a saved table filter configuration, private to the user who
// created it.
type Filter struct {
	ID            uuid.UUID       `json:"id"`
	TableType     string          `json:"tableType"`
	Name          string          `json:"name"`
	Configuration json.RawMessage `json:"configuration"`
}

type CreateFilterInput struct {
	TableType     string          `json:"tableType"`
	Name          string          `json:"name"`
	Configuration json.RawMessage `json:"configuration"`
}

func (in CreateFilterInput) Validate() error {
	if strings.TrimSpace(in.TableType) == "" {
		return dErrors.New(dErrors.CodeValidation, "table type is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "filter name is required")
	}
	if len(in.Configuration) == 0 || !json.Valid(in.Configuration) {
		return dErrors.New(dErrors.CodeValidation, "filter configuration must be valid JSON")
	}
	return nil
}
