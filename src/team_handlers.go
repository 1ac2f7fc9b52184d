package main

import (
	"errors"
	"log"
	"net/http"

	"pokedex/src/types"
	"pokedex/src/utils"

	"github.com/gin-gonic/gin"
)

func teamReadHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/teams", func(ctx *gin.Context) {
			teams, err := utils.ListTeams()
			if err != nil {
				log.Printf("Error listing teams: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": teams, "count": len(teams)})
		}).
		GET("/teams/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			team, err := utils.GetTeam(params.ID)
			if err != nil {
				if errors.Is(err, types.ErrTeamNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error retrieving team %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": team})
		})

	return g
}

func teamHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/teams", func(ctx *gin.Context) {
			var body types.CreateTeamRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			team, err := utils.CreateNewTeam(&body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": team})
		}).
		POST("/teams/:id/pokemon", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AddTeamPokemonRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			tp, err := utils.AddTeamPokemon(params.ID, &body)
			if err != nil {
				switch {
				case errors.Is(err, types.ErrTeamNotFound), errors.Is(err, types.ErrPokemonNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrTeamFull):
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				default:
					log.Printf("Error adding pokemon to team %d: %s\n", params.ID, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": tp})
		}).
		DELETE("/teams/:id/pokemon/:tpId", func(ctx *gin.Context) {
			var params struct {
				ID   uint `uri:"id" binding:"required"`
				TpID uint `uri:"tpId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.RemoveTeamPokemon(params.ID, params.TpID); err != nil {
				switch {
				case errors.Is(err, types.ErrTeamPokemonNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrTeamMismatch):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				default:
					log.Printf("Error removing pokemon %d from team %d: %s\n", params.TpID, params.ID, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		}).
		DELETE("/teams/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.DeleteTeam(params.ID); err != nil {
				log.Printf("Error deleting team %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		})

	return g
}
