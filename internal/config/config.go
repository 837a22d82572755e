package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. FINANCE_LEDGER_FILE.
const EnvPrefix = "FINANCE"

// DefaultLedgerFile is where the ledger lives when nothing else is configured.
const DefaultLedgerFile = "finance.txt"

// Config is the resolved application configuration.
type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// LedgerConfig locates the ledger file.
type LedgerConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// UIConfig styles the full-screen browser.
type UIConfig struct {
	Theme string `mapstructure:"theme" validate:"oneof=default catppuccin"`
}

// Configure registers defaults and environment overrides on v.
func Configure(v *viper.Viper) {
	v.SetDefault("ledger.file", DefaultLedgerFile)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.theme", "default")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
// The ledger path has ~ and environment variables expanded.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.Ledger.File = ExpandPath(strings.TrimSpace(cfg.Ledger.File))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and lists every problem found.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%w:\n- %s", common.ErrInvalidConfig, strings.Join(problems, "\n- "))
}

func describe(fe validator.FieldError) string {
	key := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", key, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("invalid %s %q", key, fe.Value())
	}
}
