package config

import (
	"errors"
	"fmt"
	"strings"

	"bookgen/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BOOKGEN_INPUT
const EnvPrefix = "BOOKGEN"

type Config struct {
	Input         string              `mapstructure:"input"`
	Output        string              `mapstructure:"output"`
	Seed          uint64              `mapstructure:"seed"`
	StrictGenres  bool                `mapstructure:"strict_genres"`
	ProgressEvery int                 `mapstructure:"progress_every"`
	Journal       string              `mapstructure:"journal"`
	Log           LogConfig           `mapstructure:"log"`
	Synthesis     model.SynthesisSpec `mapstructure:"synthesis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Flags declares the command-line flags Load understands
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("input", "", "source CSV dataset")
	fs.String("output", "", "generated CSV dataset")
	fs.Uint64("seed", 0, "seed for synthesized columns (0 = random)")
	fs.Bool("strict-genres", true, "abort the run on malformed genre lists")
	fs.Int("progress-every", 0, "log progress every N accepted records")
	fs.String("journal", "", "sqlite run journal (empty = disabled)")
	fs.String("log-level", "", "log level")
	fs.String("log-format", "", "log format: text or json")
	fs.Bool("list-runs", false, "print the journaled runs and exit (needs --journal)")
	return fs
}

var flagKeys = map[string]string{
	"input":          "input",
	"output":         "output",
	"seed":           "seed",
	"strict-genres":  "strict_genres",
	"progress-every": "progress_every",
	"journal":        "journal",
	"log-level":      "log.level",
	"log-format":     "log.format",
}

// Load resolves the configuration. Precedence: flags, environment, config
// file, defaults. .env files are read first but never override the real
// environment.
func Load(fs *pflag.FlagSet) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func setDefaults(v *viper.Viper) {
	synth := model.DefaultSynthesis()

	v.SetDefault("input", "datasets/books.csv")
	v.SetDefault("output", "mydatasets/books.csv")
	v.SetDefault("seed", 0)
	v.SetDefault("strict_genres", true)
	v.SetDefault("progress_every", 1000)
	v.SetDefault("journal", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("synthesis.min_copies", synth.MinCopies)
	v.SetDefault("synthesis.max_copies", synth.MaxCopies)
	v.SetDefault("synthesis.rarities", synth.Rarities)
	v.SetDefault("synthesis.age_limits", synth.AgeLimits)
}

// Validate rejects configurations no run could succeed with
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if c.Input != "" && c.Input == c.Output {
		errs = append(errs, errors.New("input and output must differ"))
	}
	if c.ProgressEvery <= 0 {
		errs = append(errs, errors.New("progress_every must be positive"))
	}
	s := c.Synthesis
	if s.MinCopies < 0 || s.MinCopies > s.MaxCopies {
		errs = append(errs, fmt.Errorf("invalid copies range [%d, %d]", s.MinCopies, s.MaxCopies))
	}
	if len(s.Rarities) == 0 {
		errs = append(errs, errors.New("synthesis.rarities is empty"))
	}
	if len(s.AgeLimits) == 0 {
		errs = append(errs, errors.New("synthesis.age_limits is empty"))
	}
	return errors.Join(errs...)
}
