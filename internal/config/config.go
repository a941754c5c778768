// Package config loads and saves .userprompt.yml.
//
// Values come from, in increasing precedence: defaults, the config file,
// and USERPROMPT_* environment variables (USERPROMPT_SUFFIX,
// USERPROMPT_LOG_LEVEL, ...).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/userprompt/internal/logger"
	"github.com/simonhull/userprompt/prompt"
)

// FileName is the config file looked up in the working directory.
const FileName = ".userprompt.yml"

// Config is the userprompt command configuration. The init command fills
// it in with a prompt session.
type Config struct {
	Suffix      string   `mapstructure:"suffix" yaml:"suffix" prompt:"Generated file suffix" help:"appended to each source file name"`
	GUI         bool     `mapstructure:"gui" yaml:"gui" prompt:"Generate form builders"`
	Frontend    string   `mapstructure:"frontend" yaml:"frontend" prompt:"Demo frontend" help:"line, huh or tui"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level" prompt:"Log level" help:"debug, info, warn or error"`
	MaxAttempts int      `mapstructure:"max_attempts" yaml:"max_attempts" prompt:"Maximum attempts" help:"0 retries forever"`
	Exclude     []string `mapstructure:"exclude" yaml:"exclude,omitempty" prompt:"Excluded files"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Suffix:   "_prompt.go",
		Frontend: "line",
		LogLevel: "warn",
	}
}

// Validate checks values that viper cannot.
func (c Config) Validate() error {
	var errs []error
	if !strings.HasSuffix(c.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("suffix %q must end in .go", c.Suffix))
	}
	switch c.Frontend {
	case "line", "huh", "tui":
	default:
		errs = append(errs, fmt.Errorf("frontend %q must be line, huh or tui", c.Frontend))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("max_attempts must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads path, or FileName in dir when path is empty. A missing file
// is not an error.
func Load(fs afero.Fs, dir, path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetFs(fs)
	v.SetDefault("suffix", def.Suffix)
	v.SetDefault("gui", def.GUI)
	v.SetDefault("frontend", def.Frontend)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("max_attempts", def.MaxAttempts)
	v.SetDefault("exclude", []string{})

	v.SetEnvPrefix("USERPROMPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		exists, _ := afero.Exists(fs, path)
		if explicit || exists {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(fs afero.Fs, path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Prompt asks for every setting and repeats until the answers validate.
func Prompt(s *prompt.Session, cfg *Config) error {
	for {
		next := *cfg
		if err := s.Value(&next, "userprompt", "Settings written to "+FileName); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			s.Println(err.Error())
			continue
		}
		*cfg = next
		return nil
	}
}
