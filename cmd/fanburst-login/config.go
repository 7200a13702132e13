package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/fanburst"
	"github.com/dmitrymomot/fanburst/internal/server"
	"github.com/dmitrymomot/fanburst/pkg/logger"
	"github.com/dmitrymomot/fanburst/pkg/redis"
)

// ErrParsingConfig is returned when the environment cannot be parsed.
var ErrParsingConfig = errors.New("config: failed to parse environment")

type cookieConfig struct {
	Secret string `env:"COOKIE_SECRET,required"`
	Domain string `env:"COOKIE_DOMAIN"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

type loginConfig struct {
	PKCE bool `env:"LOGIN_PKCE" envDefault:"true"`
}

type config struct {
	Fanburst fanburst.Config
	Log      logger.Config
	Redis    redis.Config
	Server   server.Config
	Cookie   cookieConfig
	Login    loginConfig
}

// loadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func loadConfig(files ...string) (config, error) {
	_ = godotenv.Load(files...)

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
