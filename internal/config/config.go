package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	DBPath    string          `toml:"db_path" validate:"required"`
	LogLevel  string          `toml:"log_level" validate:"oneof=debug info warn error"`
	Capacity  engine.Capacity `toml:"capacity"`
	Headcount HeadcountConfig `toml:"headcount"`
	Server    ServerConfig    `toml:"server"`
	Export    ExportConfig    `toml:"export"`
}

// HeadcountConfig holds the headcount assumed when the roster is empty.
type HeadcountConfig struct {
	FallbackPM    int `toml:"fallback_pm" validate:"gte=0"`
	FallbackStaff int `toml:"fallback_staff" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// ExportConfig points PDF export at a UTF-8 TrueType font. Empty uses the
// built-in Latin-1 font.
type ExportConfig struct {
	PDFFont string `toml:"pdf_font"`
}

// NewDefaultConfig returns the built-in defaults. dataDir is where the
// database lives; pass "" to use ~/.caseload.
func NewDefaultConfig(dataDir string) *Config {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return &Config{
		DBPath:   filepath.Join(dataDir, "caseload.db"),
		LogLevel: "info",
		Capacity: engine.DefaultCapacity(),
		Headcount: HeadcountConfig{
			FallbackPM:    5,
			FallbackStaff: 2,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultDataDir is ~/.caseload, or ./.caseload when no home is available.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".caseload"
	}
	return filepath.Join(home, ".caseload")
}

// ResolvePath picks the config file: explicit flag, then CASELOAD_CONFIG,
// then ~/.caseload/config.toml. The bool reports whether the path was asked
// for explicitly, in which case a missing file is an error.
func ResolvePath(flagPath string) (string, bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv("CASELOAD_CONFIG"); env != "" {
		return env, true
	}
	return filepath.Join(DefaultDataDir(), "config.toml"), false
}

// Load builds the configuration with priority
// defaults -> TOML file -> .env -> environment.
func Load(path string, required bool) (*Config, error) {
	cfg := NewDefaultConfig("")

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// A missing .env is normal; existing environment variables win.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CASELOAD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CASELOAD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("CASELOAD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CASELOAD_PDF_FONT"); v != "" {
		cfg.Export.PDFFont = v
	}
	if v := os.Getenv("CASELOAD_PM_CAPACITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing CASELOAD_PM_CAPACITY: %w", err)
		}
		cfg.Capacity.PMPoints = f
	}
	if v := os.Getenv("CASELOAD_STAFF_CAPACITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing CASELOAD_STAFF_CAPACITY: %w", err)
		}
		cfg.Capacity.StaffPoints = f
	}
	if v := os.Getenv("CASELOAD_FALLBACK_PM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing CASELOAD_FALLBACK_PM: %w", err)
		}
		cfg.Headcount.FallbackPM = n
	}
	if v := os.Getenv("CASELOAD_FALLBACK_STAFF"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing CASELOAD_FALLBACK_STAFF: %w", err)
		}
		cfg.Headcount.FallbackStaff = n
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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
