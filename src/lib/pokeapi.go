package lib

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"pokedex/src/config"
	"pokedex/src/types"

	"github.com/tidwall/gjson"
)

var pokeapiClient = &http.Client{Timeout: 15 * time.Second}

// FetchPokemon retrieves the raw PokeAPI document for a numeric id or a name.
func FetchPokemon(idOrName string) ([]byte, error) {
	url := fmt.Sprintf("%s/pokemon/%s", config.GetPokeAPIBaseURL(), idOrName)
	log.Printf("Fetching %s\n", url)
	res, err := pokeapiClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUpstreamFetch, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode < http.StatusOK || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", types.ErrUpstreamFetch, res.StatusCode, url)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUpstreamFetch, err.Error())
	}
	return body, nil
}

// MapPokeAPIToImport flattens the nested PokeAPI shape (types[].type.name,
// stats[].stat.name/base_stat) into the reconciliation payload. Sprites are
// kept as an opaque JSON object.
func MapPokeAPIToImport(raw []byte) types.ImportPayload {
	doc := gjson.ParseBytes(raw)
	payload := types.ImportPayload{
		Name: doc.Get("name").String(),
	}
	if v := doc.Get("id"); v.Exists() {
		id := uint(v.Uint())
		payload.ExternalID = &id
	}
	if v := doc.Get("height"); v.Exists() {
		h := int(v.Int())
		payload.Height = &h
	}
	if v := doc.Get("weight"); v.Exists() {
		w := int(v.Int())
		payload.Weight = &w
	}
	if v := doc.Get("sprites"); v.IsObject() {
		sprites := types.JSONB{}
		if err := json.Unmarshal([]byte(v.Raw), &sprites); err == nil {
			payload.Sprites = sprites
		}
	}
	doc.Get("types").ForEach(func(_, t gjson.Result) bool {
		name := t.Get("type.name").String()
		if name != "" {
			payload.Types = append(payload.Types, types.ImportTypeEntry{Name: name})
		}
		return true
	})
	doc.Get("stats").ForEach(func(_, s gjson.Result) bool {
		payload.Stats = append(payload.Stats, types.ImportStatEntry{
			Name: s.Get("stat.name").String(),
			Base: int(s.Get("base_stat").Int()),
		})
		return true
	})
	return payload
}
