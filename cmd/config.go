package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskman/internal/config"
	"github.com/josephgoksu/taskman/types"
)

const (
	configName = ".taskman.yaml"
	envPrefix  = "TASKMAN"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Translate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	var verrs validator.ValidationErrors
	if err := validate.Struct(cfg); err != nil {
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", strings.ToLower(fe.Namespace()), fmt.Sprint(fe.Value()), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// InitConfig reads in the config file and ENV variables if set.
// Precedence is flags, then environment, then config file, then defaults.
func InitConfig() error {
	// Load .env file first if present; it's okay if it doesn't exist.
	_ = godotenv.Load()

	bindRootFlags()
	viper.SetEnvPrefix(envPrefix)                          // e.g., TASKMAN_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // data.file -> TASKMAN_DATA_FILE
	viper.AutomaticEnv()
	// TASK_DATA_FILE is the variable older installs used.
	_ = viper.BindEnv("data.file", "TASKMAN_DATA_FILE", "TASK_DATA_FILE")

	if err := readConfigFile(viper.GetString("config")); err != nil {
		return err
	}

	viper.SetDefault("data.file", config.DefaultDataFile())
	viper.SetDefault("data.format", "")
	viper.SetDefault("data.backup", false)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.sort", "insertion")

	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	path, err := config.ExpandHome(strings.TrimSpace(cfg.Data.File))
	if err != nil {
		return fmt.Errorf("expand data file path: %w", err)
	}
	cfg.Data.File = path

	if err := validateAppConfig(&cfg); err != nil {
		return err
	}

	GlobalAppConfig = cfg
	return nil
}

// readConfigFile loads the explicit config file, or the first one found in
// the working directory and then the user configuration directory.
func readConfigFile(explicit string) error {
	if explicit != "" {
		viper.SetConfigFile(explicit)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", explicit, err)
		}
		return nil
	}

	for _, candidate := range configCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		viper.SetConfigFile(candidate)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", candidate, err)
		}
		return nil
	}
	return nil
}

func configCandidates() []string {
	candidates := []string{configName}
	if dir, err := config.GetGlobalConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	return candidates
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
