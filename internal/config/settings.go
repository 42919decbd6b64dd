// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultSourceURL is the Buienradar JSON feed.
	DefaultSourceURL = "https://data.buienradar.nl/2.0/feed/json"
	// DefaultDatabaseURL is a SQLite file in the working directory.
	DefaultDatabaseURL = "sqlite:///weather_data.db"
	// DefaultEnvFile is read, when present, before the process environment.
	DefaultEnvFile = ".env"
)

var (
	// ErrParsing reports failures that occur while decoding the settings file.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidSettings reports settings that cannot be used.
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings holds the application configuration.
type Settings struct {
	SourceURL   string `env:"SOURCE_URL" yaml:"sourceUrl" validate:"required,url"`
	DatabaseURL string `env:"DATABASE_URL" yaml:"databaseUrl" validate:"required"`
	EchoSQL     bool   `env:"ECHO_SQL" yaml:"echoSql"`
}

// Default returns the settings used when nothing else is configured.
func Default() Settings {
	return Settings{
		SourceURL:   DefaultSourceURL,
		DatabaseURL: DefaultDatabaseURL,
	}
}

type loadOptions struct {
	file        string
	envFile     string
	environment map[string]string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithFile reads a yaml settings file, which must exist.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithEnvFile changes the dotenv file read before the environment.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithEnvironment replaces the process environment.
func WithEnvironment(environment map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = environment
	}
}

// Load builds the settings layering, from lowest to highest priority, the
// defaults, the yaml file, the dotenv file and the environment, then validates them.
func Load(opts ...Option) (Settings, error) {
	options := &loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(options)
	}

	if options.environment == nil {
		options.environment = environ()
	}

	settings := Default()
	if options.file != "" {
		if err := settings.decodeFile(options.file); err != nil {
			return Settings{}, err
		}
	}

	environment, err := withEnvFile(options.envFile, options.environment)
	if err != nil {
		return Settings{}, err
	}

	if err := env.ParseWithOptions(&settings, env.Options{Environment: environment}); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func (s *Settings) decodeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	return nil
}

// withEnvFile returns the variables of the dotenv file at path overridden by environment.
// A missing file is not an error.
func withEnvFile(path string, environment map[string]string) (map[string]string, error) {
	if path == "" {
		return environment, nil
	}

	merged, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return environment, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	for key, value := range environment {
		merged[key] = value
	}

	return merged, nil
}

func environ() map[string]string {
	environment := make(map[string]string)
	for _, variable := range os.Environ() {
		if key, value, found := strings.Cut(variable, "="); found {
			environment[key] = value
		}
	}

	return environment
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		return name
	})

	return v
}

// Validate reports every setting that cannot be used, using the environment variable names.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		if fieldError.Tag() == "required" {
			problems = append(problems, fieldError.Field()+" is required")
			continue
		}
		problems = append(problems, fmt.Sprintf("%s must be a valid %s", fieldError.Field(), fieldError.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, ", "))
}
