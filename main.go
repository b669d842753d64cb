package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sonalijain20/blog-app/internal/db"
	"github.com/sonalijain20/blog-app/internal/httpserver"
	"github.com/sonalijain20/blog-app/internal/token"
)

func main() {
	routes := flag.Bool("routes", false, "generate router documentation")
	flag.Parse()

	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	conn, err := db.Open(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	tokens := token.NewJWT(getEnv("JWT_SECRET_KEY", "dev_secret_change_me"), 8*time.Hour)
	srv := httpserver.New(conn, tokens)

	if *routes {
		fmt.Println(docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/sonalijain20/blog-app",
			Intro:       "blog-app API generated route docs.",
		}))
		return
	}

	port := getEnv("PORT", "1111")
	log.Info().Str("port", port).Msg("starting blog-app server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
