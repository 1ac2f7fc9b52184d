package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"pokedex/src/lib"
	"pokedex/src/types"
	"pokedex/src/utils"

	"github.com/gin-gonic/gin"
)

func pokemonHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/pokemon", func(ctx *gin.Context) {
			var query types.PokemonListQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			page, err := utils.ListPokemon(query.Q, query.Page, query.Limit)
			if err != nil {
				log.Printf("Error listing pokemon: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, page)
		}).
		GET("/pokemon/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			atoi, err := strconv.Atoi(id)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pokemon, err := utils.GetPokemon(uint(atoi))
			if err != nil {
				if errors.Is(err, types.ErrPokemonNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error retrieving pokemon %d: %s\n", atoi, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pokemon})
		})

	return g
}

func importHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/import/pokemon/:idOrName", func(ctx *gin.Context) {
			var params struct {
				IDOrName string `uri:"idOrName" binding:"required,pokename"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			raw, err := lib.FetchPokemon(params.IDOrName)
			if err != nil {
				log.Printf("Error fetching [%s]: %s\n", params.IDOrName, err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			payload := lib.MapPokeAPIToImport(raw)
			pokemon, err := utils.UpsertPokemon(&payload)
			if err != nil {
				log.Printf("Error importing [%s]: %s\n", params.IDOrName, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": pokemon})
		}).
		POST("/import/seed", func(ctx *gin.Context) {
			var payloads []types.ImportPayload
			if err := ctx.ShouldBindJSON(&payloads); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			imported := make([]string, 0, len(payloads))
			for i := range payloads {
				pokemon, err := utils.UpsertPokemon(&payloads[i])
				if err != nil {
					log.Printf("Error seeding [%s]: %s\n", payloads[i].Name, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "imported": imported})
					return
				}
				imported = append(imported, pokemon.Name)
			}
			ctx.JSON(http.StatusCreated, gin.H{"imported": imported, "count": len(imported)})
		})

	return g
}
