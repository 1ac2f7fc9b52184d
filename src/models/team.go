package models

import (
	"time"
)

type Team struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	OwnerToken *string   `gorm:"size:255" json:"owner_token,omitempty"`
	Identifier *string   `gorm:"<-:create" json:"resource_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Pokemons []TeamPokemon `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"pokemons,omitempty"`
}

func (Team) TableName() string {
	return "team"
}

type TeamPokemon struct {
	ID        uint `gorm:"primarykey" json:"id"`
	TeamID    uint `gorm:"index;not null" json:"team_id"`
	PokemonID uint `gorm:"index;not null" json:"pokemon_id"`
	Slot      uint `json:"slot"` // 1..6, caller-assigned

	Pokemon Pokemon `gorm:"foreignKey:PokemonID;constraint:OnDelete:CASCADE" json:"pokemon,omitempty"`
}

func (TeamPokemon) TableName() string {
	return "team_pokemon"
}
