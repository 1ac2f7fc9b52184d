package boot

import (
	"log"
	"pokedex/src/db"
	"pokedex/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Pokemon{},
		&models.PokemonType{},
		&models.PokemonStat{},
		&models.Team{},
		&models.TeamPokemon{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
