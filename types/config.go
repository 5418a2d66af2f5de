/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool         `mapstructure:"verbose"`
	Quiet   bool         `mapstructure:"quiet"`
	JSON    bool         `mapstructure:"json"`
	Config  string       `mapstructure:"config"`
	Data    DataConfig   `mapstructure:"data" validate:"required"`
	Log     LogConfig    `mapstructure:"log"`
	Output  OutputConfig `mapstructure:"output"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml yml toml"`
	// Backup keeps a copy of the previous data file next to it on every save
	Backup bool `mapstructure:"backup"`
}

// LogConfig holds diagnostic logging settings. Logs are written to stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json logfmt"`
}

// OutputConfig holds defaults for how task lists are printed
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=table plain json yaml"`
	Sort   string `mapstructure:"sort" validate:"omitempty,oneof=insertion priority created"`
}
