package settings

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	ModeConsole = "console"
	ModeDiscord = "discord"

	DiscordMaxMessageLength = 2000

	WhiteSpaceChar = "\u200b"
)

var ErrMissingToken = errors.New("discord mode requires an auth token")

type Config struct {
	Mode         string    `env:"MODE" envDefault:"console"`
	DiscordToken string    `env:"DISCORD_AUTH_TOKEN"`
	StatsFile    string    `env:"STATS_FILE" envDefault:"rps_stats.json"`
	StatsDir     string    `env:"STATS_DIR" envDefault:"stats"`
	Seed         *uint64   `env:"SEED"`
	LogLevel     log.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeConsole:
	case ModeDiscord:
		if c.DiscordToken == "" {
			return ErrMissingToken
		}
	default:
		return fmt.Errorf("unknown mode %q (expected %q or %q)", c.Mode, ModeConsole, ModeDiscord)
	}

	if c.StatsFile == "" {
		return errors.New("stats file path must not be empty")
	}

	return nil
}

// Seeded reports whether the opponent should use a reproducible sequence.
func (c Config) Seeded() bool {
	return c.Seed != nil
}
