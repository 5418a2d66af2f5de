/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskman/internal/logger"
	"github.com/josephgoksu/taskman/store"
)

var (
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"

	// appFs is the filesystem every command reads and writes.
	appFs afero.Fs = afero.NewOsFs()
	// appLogger is built from the log.* settings before each command runs.
	appLogger = logger.Discard()
	// storeOptions are appended when opening the store.
	storeOptions []store.Option
	// now is the clock used for overdue checks in rendering.
	now = time.Now
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "taskman keeps a small list of tasks in a local file.",
	Long: `taskman is a command-line task tracker.
It lets you add, list, complete, update and delete tasks stored in a single
JSON (or YAML/TOML) file in your user configuration directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootPreRun loads configuration and builds the logger before any subcommand runs.
func rootPreRun(cmd *cobra.Command, args []string) error {
	if err := InitConfig(); err != nil {
		return err
	}
	cfg := GetConfig()

	opts := logger.DefaultOptions()
	if cfg.Log.Level != "" {
		opts.Level = cfg.Log.Level
	}
	if cfg.Verbose {
		opts.Level = "debug"
	}
	if cfg.Log.Format != "" {
		opts.Format = cfg.Log.Format
	}
	appLogger = logger.New(cmd.ErrOrStderr(), opts)

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath(), args)
	logger.SetBasePath(filepath.Dir(cfg.Data.File))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		HandleFatalError(userMessage(err), err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./.taskman.yaml or <config dir>/taskman/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "task data file (default is <config dir>/taskman/tasks.json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "print only essential output")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "diagnostic log format (text, json, logfmt)")

	bindRootFlags()
	// Assigned here because InitConfig reads rootCmd's flags.
	rootCmd.PersistentPreRunE = rootPreRun
}

// bindRootFlags binds persistent flags to Viper keys. It is safe to call again after viper.Reset.
func bindRootFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("data.file", flags.Lookup("file"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("json", flags.Lookup("json"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

// GetStore opens the task store described by the loaded configuration.
func GetStore() (*store.FileTaskStore, error) {
	cfg, opts := storeSettings()
	return store.Open(cfg, opts...)
}

// getUnloadedStore returns the configured store without reading the data file,
// for commands that replace its contents wholesale.
func getUnloadedStore() (*store.FileTaskStore, error) {
	cfg, opts := storeSettings()
	return store.NewFileTaskStore(cfg, opts...)
}

func storeSettings() (store.Config, []store.Option) {
	cfg := GetConfig()
	opts := append([]store.Option{
		store.WithFs(appFs),
		store.WithLogger(appLogger),
	}, storeOptions...)

	return store.Config{
		Path:   cfg.Data.File,
		Format: cfg.Data.Format,
		Backup: cfg.Data.Backup,
	}, opts
}

// loggerFor returns the command logger tagged with the command name.
func loggerFor(cmd *cobra.Command) *slog.Logger {
	return appLogger.With("cmd", cmd.Name())
}
