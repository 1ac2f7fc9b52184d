package utils

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"pokedex/src/config"
	"pokedex/src/db"
	"pokedex/src/models"
	"pokedex/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const TEAM_SIZE_LIMIT = 6

type PokemonPage struct {
	Items []models.Pokemon `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ListPokemon returns one page of the catalog ordered by ascending id. The
// name match is a case-insensitive substring; Total counts the full match
// regardless of the pagination window. Types are joined, Stats are not.
func ListPokemon(q string, page int, limit int) (*PokemonPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DEFAULT_PAGE_LIMIT
	}
	db := db.GetDb()
	match := func() *gorm.DB {
		query := db.Model(&models.Pokemon{})
		if q != "" {
			query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
		return query
	}
	var total int64
	if err := match().Count(&total).Error; err != nil {
		return nil, err
	}
	items := []models.Pokemon{}
	if err := match().
		Preload("Types").
		Order("id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).
		Error; err != nil {
		return nil, err
	}
	return &PokemonPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func GetPokemon(id uint) (*models.Pokemon, error) {
	db := db.GetDb()
	var pokemon models.Pokemon
	err := db.
		Model(&models.Pokemon{}).
		Where(&models.Pokemon{ID: id}).
		Preload("Types").
		Preload("Stats").
		First(&pokemon).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrPokemonNotFound
		}
		return nil, err
	}
	return &pokemon, nil
}

// UpsertPokemon reconciles an externally-sourced payload with the store:
// match by external id, then by exact name; find-or-create the type tags and
// replace the tag set; overwrite scalars present in the payload; replace stat
// rows wholesale when the payload carries a stats list. The returned record
// is re-read after the write so the caller observes persisted state.
func UpsertPokemon(payload *types.ImportPayload) (*models.Pokemon, error) {
	db := db.GetDb()

	existing, err := matchPokemon(db, payload)
	if err != nil {
		return nil, err
	}
	if existing == nil && payload.Name == "" {
		return nil, types.ErrMissingName
	}

	// Tag rows are find-or-create by exact name, outside the write
	// transaction. A later failure can leave fresh tag rows behind; reruns
	// reuse them, so reconciliation stays convergent.
	tags := make([]*models.PokemonType, 0, len(payload.Types))
	seen := make(map[string]bool, len(payload.Types))
	for _, t := range payload.Types {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		var tag models.PokemonType
		if err := db.Where(&models.PokemonType{Name: t.Name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}

	var pokemonId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		if existing != nil {
			mergePokemonFields(existing, payload)
			if err := tx.Omit("Types", "Stats").Save(existing).Error; err != nil {
				return err
			}
			if err := tx.Model(existing).Association("Types").Replace(tags); err != nil {
				return err
			}
			if payload.Stats != nil {
				if err := tx.Where("pokemon_id = ?", existing.ID).Delete(&models.PokemonStat{}).Error; err != nil {
					return err
				}
				if err := insertStats(tx, existing.ID, payload.Stats); err != nil {
					return err
				}
			}
			pokemonId = existing.ID
			return nil
		}

		created := models.Pokemon{
			Name:       payload.Name,
			ExternalID: payload.ExternalID,
			Height:     payload.Height,
			Weight:     payload.Weight,
			Sprites:    payload.Sprites,
		}
		if err := tx.Omit("Types").Create(&created).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&created).Association("Types").Replace(tags); err != nil {
				return err
			}
		}
		if payload.Stats != nil {
			if err := insertStats(tx, created.ID, payload.Stats); err != nil {
				return err
			}
		}
		pokemonId = created.ID
		return nil
	})
	if err != nil {
		log.Printf("Error reconciling pokemon [%s]: %s\n", payload.Name, err.Error())
		return nil, err
	}

	return GetPokemon(pokemonId)
}

func matchPokemon(db *gorm.DB, payload *types.ImportPayload) (*models.Pokemon, error) {
	if payload.ExternalID != nil {
		var pokemon models.Pokemon
		err := db.
			Where("external_id = ?", *payload.ExternalID).
			Preload("Types").
			Preload("Stats").
			First(&pokemon).
			Error
		if err == nil {
			return &pokemon, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if payload.Name != "" {
		var pokemon models.Pokemon
		err := db.
			Where("name = ?", payload.Name).
			Preload("Types").
			Preload("Stats").
			First(&pokemon).
			Error
		if err == nil {
			return &pokemon, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// mergePokemonFields overwrites scalars the payload carries; a nil pointer
// (field absent or JSON null) keeps the stored value.
func mergePokemonFields(pokemon *models.Pokemon, payload *types.ImportPayload) {
	if payload.Name != "" {
		pokemon.Name = payload.Name
	}
	if payload.ExternalID != nil {
		pokemon.ExternalID = payload.ExternalID
	}
	if payload.Height != nil {
		pokemon.Height = payload.Height
	}
	if payload.Weight != nil {
		pokemon.Weight = payload.Weight
	}
	if payload.Sprites != nil {
		pokemon.Sprites = payload.Sprites
	}
}

func insertStats(tx *gorm.DB, pokemonId uint, entries []types.ImportStatEntry) error {
	if len(entries) == 0 {
		return nil
	}
	stats := make([]models.PokemonStat, 0, len(entries))
	for _, s := range entries {
		stats = append(stats, models.PokemonStat{Name: s.Name, Base: s.Base, PokemonID: pokemonId})
	}
	return tx.Create(&stats).Error
}

func CreateNewTeam(params *types.CreateTeamRequestBody) (*models.Team, error) {
	team := models.Team{Name: params.Name}
	if params.OwnerToken != "" {
		team.OwnerToken = &params.OwnerToken
	}
	resId := fmt.Sprintf("team:%s/%s", slug.Make(params.Name), uuid.NewString())
	team.Identifier = &resId

	db := db.GetDb()
	if err := db.Create(&team).Error; err != nil {
		log.Printf("Error creating team [%s]: %s\n", params.Name, err.Error())
		return nil, err
	}
	return &team, nil
}

func ListTeams() ([]models.Team, error) {
	db := db.GetDb()
	teams := []models.Team{}
	err := db.
		Preload("Pokemons").
		Preload("Pokemons.Pokemon").
		Order("id asc").
		Find(&teams).
		Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func GetTeam(id uint) (*models.Team, error) {
	db := db.GetDb()
	var team models.Team
	err := db.
		Model(&models.Team{}).
		Where(&models.Team{ID: id}).
		Preload("Pokemons").
		Preload("Pokemons.Pokemon").
		First(&team).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// AddTeamPokemon links a pokemon into a team at the given slot. Capacity is
// capped at TEAM_SIZE_LIMIT; duplicate members and shared slots are the
// caller's responsibility.
func AddTeamPokemon(teamId uint, params *types.AddTeamPokemonRequestBody) (*models.TeamPokemon, error) {
	db := db.GetDb()
	var tp models.TeamPokemon
	err := db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Preload("Pokemons").First(&team, teamId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrTeamNotFound
			}
			return err
		}
		if len(team.Pokemons) >= TEAM_SIZE_LIMIT {
			return types.ErrTeamFull
		}
		var pokemon models.Pokemon
		if err := tx.First(&pokemon, params.PokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrPokemonNotFound
			}
			return err
		}
		tp = models.TeamPokemon{TeamID: team.ID, PokemonID: pokemon.ID, Slot: params.Slot}
		return tx.Create(&tp).Error
	})
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func RemoveTeamPokemon(teamId uint, teamPokemonId uint) error {
	db := db.GetDb()
	var tp models.TeamPokemon
	if err := db.First(&tp, teamPokemonId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrTeamPokemonNotFound
		}
		return err
	}
	if tp.TeamID != teamId {
		return types.ErrTeamMismatch
	}
	return db.Delete(&tp).Error
}

// DeleteTeam removes the team row; memberships go with it via the cascade.
// Deleting an absent id is a deliberate idempotent no-op.
func DeleteTeam(teamId uint) error {
	db := db.GetDb()
	return db.Delete(&models.Team{}, teamId).Error
}
