package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix  = "FILECONV_"
	MaxWorkers = 256
)

// Config holds defaults for the convert command. Flags given on the command
// line take precedence over every field.
type Config struct {
	Target    string `yaml:"target"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
	Overwrite bool   `yaml:"overwrite"`
	Recursive bool   `yaml:"recursive"`
}

func Default() *Config {
	return &Config{OutputDir: "converted"}
}

var extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)

var targetRule = validation.Match(extensionPattern).Error("target must be a bare lowercase extension such as png")

// ValidateTarget checks a target format given on the command line.
func ValidateTarget(target string) error {
	if err := validation.Validate(target, validation.Required, targetRule); err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	return nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Target, targetRule),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
	)
}

// Load builds a Config from defaults, the YAML file at path, the .env file at
// envFile and FILECONV_* environment variables, in increasing precedence.
// Empty or missing path and envFile are skipped.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if envFile != "" {
		// Variables already set in the environment are not overridden.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Target = strings.ToLower(strings.TrimPrefix(cfg.Target, "."))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv("TARGET"); ok {
		cfg.Target = v
	}
	if v, ok := lookupEnv("OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	if v, ok := lookupEnv("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		cfg.Workers = n
	}
	if v, ok := lookupEnv("OVERWRITE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sOVERWRITE: %w", EnvPrefix, err)
		}
		cfg.Overwrite = b
	}
	if v, ok := lookupEnv("RECURSIVE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sRECURSIVE: %w", EnvPrefix, err)
		}
		cfg.Recursive = b
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
