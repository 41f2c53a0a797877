package settings

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Prefix = "RPS_CHAMPIONSHIP"

// LoadEnvFiles loads dotenv files for the current environment. Variables that
// are already set in the process environment win over file values.
func LoadEnvFiles() {
	environment := os.Getenv(EnvKey("ENV"))
	if environment == "" {
		environment = "development"
	}

	godotenv.Load(".env." + environment + ".local")
	godotenv.Load(".env." + environment)
	godotenv.Load()
}

// Load reads dotenv files and parses the prefixed environment into a Config.
func Load() (Config, error) {
	LoadEnvFiles()
	return Parse(os.Environ())
}

// Parse builds a Config from a list of KEY=VALUE pairs.
func Parse(environ []string) (Config, error) {
	var cfg Config
	opts := env.Options{
		Prefix:      Prefix + "_",
		Environment: env.ToMap(environ),
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func EnvKey(str string) string {
	return fmt.Sprintf("%s_%s", Prefix, str)
}
