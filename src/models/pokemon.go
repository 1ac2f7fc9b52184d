package models

import (
	"pokedex/src/types"
)

type Pokemon struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	Name       string      `gorm:"size:255;unique;not null" json:"name"`
	ExternalID *uint       `gorm:"uniqueIndex" json:"external_id,omitempty"`
	Height     *int        `json:"height,omitempty"`
	Weight     *int        `json:"weight,omitempty"`
	Sprites    types.JSONB `gorm:"type:json" json:"sprites,omitempty"`

	Types []*PokemonType `gorm:"many2many:pokemon_types;constraint:OnDelete:CASCADE" json:"types,omitempty"`
	Stats []PokemonStat  `gorm:"foreignKey:PokemonID;constraint:OnDelete:CASCADE" json:"stats,omitempty"`
}

func (Pokemon) TableName() string {
	return "pokemon"
}

// PokemonType is a shared label; rows are never owned by a single Pokemon.
type PokemonType struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;unique;not null" json:"name"`

	Pokemon []*Pokemon `gorm:"many2many:pokemon_types" json:"-"`
}

func (PokemonType) TableName() string {
	return "pokemon_type"
}

// PokemonStat rows are replaced wholesale on every reconciliation of their
// owner.
type PokemonStat struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Base      int    `gorm:"not null" json:"base"`
	PokemonID uint   `gorm:"index;not null" json:"-"`
}

func (PokemonStat) TableName() string {
	return "pokemon_stat"
}
