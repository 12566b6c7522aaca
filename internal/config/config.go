// Package config loads geodrill settings from defaults, a YAML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables. A double underscore
// separates nested keys: GEODRILL_MONGO__URI sets mongo.uri.
const EnvPrefix = "GEODRILL_"

// Backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config is the resolved application configuration.
type Config struct {
	User    string `koanf:"user" validate:"omitempty,max=32"`
	Backend string `koanf:"backend" validate:"required,oneof=sqlite mongo memory"`
	DB      string `koanf:"db"`
	Mongo   Mongo  `koanf:"mongo"`
	DataDir string `koanf:"data_dir" validate:"omitempty,dir"`
	Log     Log    `koanf:"log"`
	Seed    uint64 `koanf:"seed"`
}

// Mongo configures the document store backend.
type Mongo struct {
	URI      string `koanf:"uri" validate:"omitempty,uri"`
	Database string `koanf:"database" validate:"required"`
}

// Log configures the log file.
type Log struct {
	File  string `koanf:"file"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel maps Level onto slog.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var defaults = map[string]any{
	"user":           "",
	"backend":        BackendSQLite,
	"db":             "",
	"mongo.uri":      "",
	"mongo.database": "geodrill",
	"data_dir":       "",
	"log.file":       "",
	"log.level":      "info",
	"seed":           0,
}

// flagKeys maps flag names to config keys. Flags not listed are ignored.
var flagKeys = map[string]string{
	"user":      "user",
	"backend":   "backend",
	"db":        "db",
	"data-dir":  "data_dir",
	"log-file":  "log.file",
	"log-level": "log.level",
	"seed":      "seed",
}

// BindFlags registers the persistent flags Load understands.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default $XDG_CONFIG_HOME/geodrill/config.yaml)")
	flags.String("user", "", "sign in as this user (empty plays as guest)")
	flags.String("backend", BackendSQLite, "storage backend: sqlite, mongo or memory")
	flags.String("db", "", "SQLite database path")
	flags.String("data-dir", "", "directory with countries.json / languages.json overrides")
	flags.String("log-file", "", "log file path (default next to the database)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Uint64("seed", 0, "random seed (0 picks one from the clock)")
}

// Options controls where Load looks.
type Options struct {
	// Flags parsed by cobra. May be nil.
	Flags *pflag.FlagSet

	// EnvFile is loaded into the process environment first if it exists.
	// Empty means ".env".
	EnvFile string
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	path, explicit := configPath(opts.Flags)
	if path != "" && (explicit || fileExists(path)) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func flagKey(f *pflag.Flag) (string, any) {
	key, ok := flagKeys[f.Name]
	if !ok {
		return "", nil
	}
	return key, f.Value.String()
}

// configPath returns the YAML file to read and whether it was asked for
// explicitly. A missing default file is not an error.
func configPath(flags *pflag.FlagSet) (string, bool) {
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			return f.Value.String(), true
		}
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, true
	}
	p, err := DefaultPath()
	if err != nil {
		return "", false
	}
	return p, false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath is $XDG_CONFIG_HOME/geodrill/config.yaml, falling back to
// ~/.config/geodrill/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "geodrill", "config.yaml"), nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(Config)
		if c.Backend == BackendMongo && c.Mongo.URI == "" {
			sl.ReportError(c.Mongo.URI, "Mongo.URI", "URI", "required_for_mongo", "")
		}
	}, Config{})
	return v
}

// Validate checks field constraints and backend requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "required_for_mongo":
		return "mongo.uri is required when backend is mongo"
	case "dir":
		return fmt.Sprintf("%s %q is not a directory", field, fe.Value())
	case "max":
		return fmt.Sprintf("%s is longer than %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
