package config

import (
	"fmt"
	"os"
)

// const dsn = "host=localhost user=postgres password=password dbname=pokedex port=5432 sslmode=disable"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// GetAPIToken returns the shared secret that gates team and import routes.
func GetAPIToken() string {
	token := os.Getenv("TEAM_API_TOKEN")
	if token == "" {
		token = "SECRET123"
	}
	return token
}

func GetPokeAPIBaseURL() string {
	base := os.Getenv("POKEAPI_URL")
	if base == "" {
		base = "https://pokeapi.co/api/v2"
	}
	return base
}

const DEFAULT_PAGE_LIMIT = 20
