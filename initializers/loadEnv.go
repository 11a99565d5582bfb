package initializers

import (
	"log"

	"github.com/Kariqs/agromarket-api/config"
)

var Config *config.Config

func LoadEnv() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	Config = cfg
	return cfg
}
