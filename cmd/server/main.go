package main

import (
	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/app"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
