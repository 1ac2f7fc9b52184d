package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"

	"pokedex/src/boot"
	"pokedex/src/config"
	"pokedex/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

// PokeAPI identifiers are numeric ids or lowercase dashed names.
var pokemonNameValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	match, _ := regexp.MatchString(`^[a-z0-9-]+$`, v)
	return match
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("pokename", pokemonNameValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	healthcheck := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Pokédex API is running"})
	}
	router.GET("/", healthcheck)
	router.GET("/health", healthcheck)
	return router
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1 = pokemonHandlers(apiv1)
	apiv1 = teamReadHandlers(apiv1)
	return apiv1
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env file loaded: %s\n", err.Error())
		}
	}
	initLogger()

	boot.InitDb()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()

	publicRoutes(router)

	// Shared secret resolved once here and handed to the middleware.
	apiToken := config.GetAPIToken()
	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.TokenAuth(apiToken))
	{
		authorized = teamHandlers(authorized)
		authorized = importHandlers(authorized)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %s\n", err.Error())
	}
}
