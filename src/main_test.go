package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pokedex/src/db"
	"pokedex/src/middlewares"
	"pokedex/src/models"
	"pokedex/src/types"
	"pokedex/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAPIToken = "test-secret"

type APITestSuite struct {
	suite.Suite
	DB     *gorm.DB
	router *gin.Engine
}

var apiTestDbSeq int

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidators()

	apiTestDbSeq++
	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared&_foreign_keys=1", apiTestDbSeq)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	err = gormDB.AutoMigrate(
		&models.Pokemon{},
		&models.PokemonType{},
		&models.PokemonStat{},
		&models.Team{},
		&models.TeamPokemon{},
	)
	s.Require().NoError(err)
	db.NewDB(gormDB)
	s.DB = gormDB

	router := setupRouter()
	publicRoutes(router)
	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.TokenAuth(testAPIToken))
	teamHandlers(authorized)
	importHandlers(authorized)
	s.router = router
}

func (s *APITestSuite) request(method, target, body string, authorized bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testAPIToken)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) seedCatalog(names ...string) {
	for _, name := range names {
		_, err := utils.UpsertPokemon(&types.ImportPayload{Name: name})
		s.Require().NoError(err)
	}
}

func (s *APITestSuite) TestHealthcheck() {
	w := s.request(http.MethodGet, "/", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", gjson.Get(w.Body.String(), "status").String())

	w = s.request(http.MethodGet, "/health", "", false)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestListPokemonEndpoint() {
	s.seedCatalog("charmander", "charmeleon", "charizard", "bulbasaur")

	w := s.request(http.MethodGet, "/api/v1/pokemon?q=char&page=1&limit=2", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.EqualValues(2, gjson.Get(body, "items.#").Int())
	s.EqualValues(3, gjson.Get(body, "total").Int())
	s.EqualValues(1, gjson.Get(body, "page").Int())
	s.EqualValues(2, gjson.Get(body, "limit").Int())
}

func (s *APITestSuite) TestListPokemonRejectsBadPage() {
	w := s.request(http.MethodGet, "/api/v1/pokemon?page=0", "", false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestGetPokemonEndpoint() {
	s.seedCatalog("bulbasaur")

	w := s.request(http.MethodGet, "/api/v1/pokemon/1", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("bulbasaur", gjson.Get(w.Body.String(), "data.name").String())

	w = s.request(http.MethodGet, "/api/v1/pokemon/999", "", false)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestTeamRoutesRequireToken() {
	w := s.request(http.MethodPost, "/api/v1/teams", `{"name":"Kanto"}`, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader(`{"name":"Kanto"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong-token")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestTeamLifecycle() {
	s.seedCatalog("bulbasaur", "charmander")

	w := s.request(http.MethodPost, "/api/v1/teams", `{"name":"Kanto Squad","owner_token":"trainer-red"}`, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	teamId := gjson.Get(w.Body.String(), "data.id").Int()
	s.Require().NotZero(teamId)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/teams/%d/pokemon", teamId), `{"pokemon_id":1,"slot":1}`, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	tpId := gjson.Get(w.Body.String(), "data.id").Int()
	s.Require().NotZero(tpId)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/v1/teams/%d", teamId), "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(1, gjson.Get(w.Body.String(), "data.pokemons.#").Int())
	s.Equal("bulbasaur", gjson.Get(w.Body.String(), "data.pokemons.0.pokemon.name").String())

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d/pokemon/%d", teamId+1, tpId), "", true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d/pokemon/%d", teamId, tpId), "", true)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d", teamId), "", true)
	s.Equal(http.StatusOK, w.Code)
	s.True(gjson.Get(w.Body.String(), "ok").Bool())
}

func (s *APITestSuite) TestDeleteMissingTeamSucceeds() {
	w := s.request(http.MethodDelete, "/api/v1/teams/424242", "", true)
	s.Equal(http.StatusOK, w.Code)
	s.True(gjson.Get(w.Body.String(), "ok").Bool())
}

func (s *APITestSuite) TestAddTeamPokemonValidatesSlot() {
	s.seedCatalog("bulbasaur")
	w := s.request(http.MethodPost, "/api/v1/teams", `{"name":"Kanto"}`, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	teamId := gjson.Get(w.Body.String(), "data.id").Int()

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/teams/%d/pokemon", teamId), `{"pokemon_id":1,"slot":7}`, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestTeamCapacityOverHTTP() {
	s.seedCatalog("a1", "a2", "a3", "a4", "a5", "a6", "a7")
	w := s.request(http.MethodPost, "/api/v1/teams", `{"name":"Full House"}`, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	teamId := gjson.Get(w.Body.String(), "data.id").Int()

	for slot := 1; slot <= 6; slot++ {
		w := s.request(http.MethodPost, fmt.Sprintf("/api/v1/teams/%d/pokemon", teamId),
			fmt.Sprintf(`{"pokemon_id":%d,"slot":%d}`, slot, slot), true)
		s.Require().Equal(http.StatusCreated, w.Code)
	}
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/teams/%d/pokemon", teamId), `{"pokemon_id":7,"slot":1}`, true)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *APITestSuite) TestImportEndpoint() {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/pokemon/bulbasaur") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pokeapiFixture)
	}))
	defer upstream.Close()
	s.T().Setenv("POKEAPI_URL", upstream.URL)

	w := s.request(http.MethodPost, "/api/v1/import/pokemon/bulbasaur", "", true)
	s.Require().Equal(http.StatusCreated, w.Code)
	body := w.Body.String()
	s.Equal("bulbasaur", gjson.Get(body, "data.name").String())
	s.EqualValues(1, gjson.Get(body, "data.external_id").Int())
	s.EqualValues(2, gjson.Get(body, "data.types.#").Int())
	s.EqualValues(2, gjson.Get(body, "data.stats.#").Int())

	w = s.request(http.MethodPost, "/api/v1/import/pokemon/missingno", "", true)
	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *APITestSuite) TestImportEndpointRejectsBadIdentifier() {
	w := s.request(http.MethodPost, "/api/v1/import/pokemon/Bad%20Name!", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestSeedEndpoint() {
	payload := `[
		{"name":"bulbasaur","external_id":1,"types":[{"name":"grass"}],"stats":[{"name":"hp","base":45}]},
		{"name":"ivysaur","external_id":2,"types":[{"name":"grass"}]}
	]`
	w := s.request(http.MethodPost, "/api/v1/import/seed", payload, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	s.EqualValues(2, gjson.Get(w.Body.String(), "count").Int())

	var count int64
	s.Require().NoError(s.DB.Model(&models.PokemonType{}).Where("name = ?", "grass").Count(&count).Error)
	s.EqualValues(1, count)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

const pokeapiFixture = `{
  "id": 1,
  "name": "bulbasaur",
  "height": 7,
  "weight": 69,
  "sprites": {
    "front_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/1.png",
    "back_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/back/1.png"
  },
  "types": [
    {"slot": 1, "type": {"name": "grass", "url": "https://pokeapi.co/api/v2/type/12/"}},
    {"slot": 2, "type": {"name": "poison", "url": "https://pokeapi.co/api/v2/type/4/"}}
  ],
  "stats": [
    {"base_stat": 45, "effort": 0, "stat": {"name": "hp", "url": "https://pokeapi.co/api/v2/stat/1/"}},
    {"base_stat": 49, "effort": 0, "stat": {"name": "attack", "url": "https://pokeapi.co/api/v2/stat/2/"}}
  ]
}`
