package types

import "errors"

// Failure taxonomy surfaced by the core. Handlers map these to HTTP statuses
// with errors.Is.
var (
	ErrPokemonNotFound     = errors.New("Pokemon not found")
	ErrTeamNotFound        = errors.New("Team not found")
	ErrTeamPokemonNotFound = errors.New("Team Pokemon not found")
	ErrTeamFull            = errors.New("Team already has 6 pokemons")
	ErrTeamMismatch        = errors.New("Mismatched team")
	ErrMissingName         = errors.New("pokemon name is required")
	ErrUpstreamFetch       = errors.New("upstream fetch failed")
)
