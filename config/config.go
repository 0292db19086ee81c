package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/filewriter/database"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for filewriter.
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Storage  StorageConfig   `mapstructure:"storage"`
	Metadata MetadataConfig  `mapstructure:"metadata"`
	Database database.Config `mapstructure:"database"`
	CORS     CORSConfig      `mapstructure:"cors"`
	Log      LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Root        string `mapstructure:"root" validate:"required,oneof=static listing"`
	MaxBodySize int64  `mapstructure:"max_body_size" validate:"min=0"`
}

// StorageConfig holds object store configuration.
type StorageConfig struct {
	Type            string `mapstructure:"type" validate:"required,oneof=s3 filesystem"`
	Endpoint        string `mapstructure:"endpoint" validate:"required_if=Type s3"`
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required_if=Type s3"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required_if=Type s3"`
	Bucket          string `mapstructure:"bucket" validate:"required"`
	Region          string `mapstructure:"region"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	Path            string `mapstructure:"path" validate:"required_if=Type filesystem"`
	BucketRequired  bool   `mapstructure:"bucket_required"`
}

// MetadataConfig controls tagging.
type MetadataConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	TagUpdate string `mapstructure:"tag_update" validate:"required,oneof=keep replace"`
}

// CORSConfig holds cross-origin settings for the HTTP API.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"min=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Env   string `mapstructure:"env" validate:"required,oneof=dev prod"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":         "server.port",
	"root":         "server.root",
	"storage-type": "storage.type",
	"storage-path": "storage.path",
	"bucket":       "storage.bucket",
	"metadata":     "metadata.enabled",
	"tag-update":   "metadata.tag_update",
	"db-type":      "database.type",
	"db-dsn":       "database.dsn",
	"log-level":    "log.level",
}

// legacyEnv lists the unprefixed variable names accepted for a key in
// addition to its FILEWRITER_ form.
var legacyEnv = map[string]string{
	"server.port":               "PORT",
	"storage.endpoint":          "S3_ENDPOINT",
	"storage.access_key_id":     "S3_ACCESS_KEY_ID",
	"storage.secret_access_key": "S3_SECRET_ACCESS_KEY",
	"storage.bucket":            "S3_BUCKET_NAME",
	"storage.region":            "S3_REGION",
	"database.dsn":              "DATABASE_URL",
}

const envPrefix = "FILEWRITER"

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// bindEnv makes the prefixed name win over the legacy one.
func bindEnv(v *viper.Viper) {
	replacer := strings.NewReplacer(".", "_")
	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		_ = v.BindEnv(key, prefixed, legacy)
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.root", "static")
	v.SetDefault("server.max_body_size", 1<<20)

	v.SetDefault("storage.type", "s3")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.bucket_required", false)

	v.SetDefault("metadata.enabled", true)
	v.SetDefault("metadata.tag_update", "keep")

	v.SetDefault("database.type", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.tables.tags", "file_tags")

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.env", "dev")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks struct tags plus the rules that span sections.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !c.Metadata.Enabled {
		return nil
	}

	if c.Database.DSN == "" {
		return errors.New("database.dsn is required when metadata is enabled")
	}

	return c.Database.Tables.Validate()
}
