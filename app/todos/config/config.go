// Package config holds the configuration for the todos service.
package config

import (
	"fmt"

	"github.com/jrazmi/todos/infrastructure/web"
	"github.com/jrazmi/todos/sdk/environment"
	"github.com/jrazmi/todos/sdk/logger"
)

// DefaultFile is the TOML file read when PREFIX_CONFIG is not set.
const DefaultFile = "todos.toml"

// CORS lists the browser origins allowed to call the API from another site.
// CORS handling is disabled when Origins is empty.
type CORS struct {
	Origins []string `toml:"origins" env:"CORS_ORIGINS" separator:","`
}

// Todos is the overall configuration for the todos service.
type Todos struct {
	Build  string             `toml:"-"`
	Server web.ServerConfig   `toml:"server"`
	Web    web.HandlerOptions `toml:"web"`
	Log    logger.Options     `toml:"log"`
	CORS   CORS               `toml:"cors"`
}

// Load reads the optional TOML file named by PREFIX_CONFIG and then lets
// PREFIX_* environment variables override it. Anything still unset falls
// back to the struct defaults.
func Load(prefix string) (Todos, error) {
	var cfg Todos

	path := environment.GetNamespaceEnvOrDefault(prefix, "CONFIG", DefaultFile)
	if err := environment.LoadTOML(path, &cfg); err != nil {
		return Todos{}, fmt.Errorf("loading config file: %w", err)
	}

	if err := environment.ParseEnvTags(prefix, &cfg.Server); err != nil {
		return Todos{}, fmt.Errorf("parsing server config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &cfg.Web); err != nil {
		return Todos{}, fmt.Errorf("parsing web config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &cfg.Log); err != nil {
		return Todos{}, fmt.Errorf("parsing log config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &cfg.CORS); err != nil {
		return Todos{}, fmt.Errorf("parsing cors config: %w", err)
	}

	return cfg, nil
}
