package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TABCONV_"

type Config struct {
	Log        Log        `yaml:"log" envPrefix:"LOG_"`
	Conversion Conversion `yaml:"conversion" envPrefix:"CONVERSION_"`
	Metrics    Metrics    `yaml:"metrics" envPrefix:"METRICS_"`
}

type Log struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=trace debug info warn warning error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`

	// File receives log entries when set. The interactive UI discards logs
	// unless a file is configured.
	File string `yaml:"file" env:"FILE"`
}

type Conversion struct {
	Overwrite     bool   `yaml:"overwrite" env:"OVERWRITE"`
	TypedCells    bool   `yaml:"typed_cells" env:"TYPED_CELLS"`
	DefaultTarget string `yaml:"default_target" env:"DEFAULT_TARGET" validate:"oneof=.csv .txt .xlsx"`
}

type Metrics struct {
	// Textfile is where metrics are written after a batch conversion.
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Conversion: Conversion{
			Overwrite:     false,
			TypedCells:    true,
			DefaultTarget: ".xlsx",
		},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tabconv", "config.yaml")
}

// Load reads the YAML file at path over the defaults, applies TABCONV_
// environment overrides and validates the result. A missing file is an
// error only when mustExist is set.
func Load(fs afero.Fs, path string, mustExist bool) (*Config, error) {
	conf := Default()

	if path != "" {
		if err := readFile(fs, path, mustExist, conf); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(conf, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := Validate(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func readFile(fs afero.Fs, path string, mustExist bool, conf *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return errors.Wrapf(err, "failed to read config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to parse config %s", path)
	}

	return nil
}

// Validate checks field values against their allowed sets.
func Validate(conf *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(conf); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
