package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// ImportPayload is the normalized shape fed to the reconciliation engine.
// Pointer scalars distinguish "absent, keep the stored value" (nil) from an
// overwrite. A nil Stats slice leaves existing stat rows alone; an empty one
// clears them.
type ImportPayload struct {
	Name       string            `json:"name"`
	ExternalID *uint             `json:"external_id,omitempty"`
	Height     *int              `json:"height,omitempty"`
	Weight     *int              `json:"weight,omitempty"`
	Sprites    JSONB             `json:"sprites,omitempty"`
	Types      []ImportTypeEntry `json:"types,omitempty"`
	Stats      []ImportStatEntry `json:"stats,omitempty"`
}

type ImportTypeEntry struct {
	Name string `json:"name"`
}

type ImportStatEntry struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

type PokemonListQuery struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1" binding:"min=1"`
	Limit int    `form:"limit,default=20" binding:"min=1"`
}

type CreateTeamRequestBody struct {
	Name       string `json:"name" binding:"required"`
	OwnerToken string `json:"owner_token,omitempty"`
}

type AddTeamPokemonRequestBody struct {
	PokemonID uint `json:"pokemon_id" binding:"required"`
	Slot      uint `json:"slot" binding:"required,min=1,max=6"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
