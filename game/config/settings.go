package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds process-wide settings read from the environment
type Settings struct {
	ConfigDir  string        `env:"CONFIG_DIR" envDefault:"configs"`
	Seed       int64         `env:"GAME_SEED" envDefault:"0"`
	MaxTurns   int           `env:"MAX_TURNS" envDefault:"10000"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Debug      bool          `env:"DEBUG" envDefault:"false"`
}

// LoadSettings loads the optional env files (".env" when none are given)
// and parses Settings from the environment. Variables already set in the
// environment win over the files.
func LoadSettings(files ...string) (*Settings, error) {
	if err := godotenv.Load(files...); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks settings bounds
func (s *Settings) Validate() error {
	if s.ConfigDir == "" {
		return fmt.Errorf("%w: CONFIG_DIR is empty", ErrInvalidSettings)
	}
	if s.MaxTurns < 0 {
		return fmt.Errorf("%w: MAX_TURNS must not be negative, got %d", ErrInvalidSettings, s.MaxTurns)
	}
	if s.SessionTTL < 0 {
		return fmt.Errorf("%w: SESSION_TTL must not be negative, got %s", ErrInvalidSettings, s.SessionTTL)
	}
	return nil
}
