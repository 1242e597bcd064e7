package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the CLI, menu and web server need.
type Config struct {
	Database DatabaseConfig `mapstructure:"db"`
	Charts   ChartConfig    `mapstructure:"chart"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Web      WebConfig      `mapstructure:"web"`
	Debug    bool           `mapstructure:"debug"`
}

// DatabaseConfig selects and addresses the dataset database.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"` // postgres | sqlite
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ChartConfig controls PNG chart output.
type ChartConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// AnalysisConfig tunes the menu analyses.
type AnalysisConfig struct {
	TopDrugs      int    `mapstructure:"top_drugs"`
	KMeansK       int    `mapstructure:"kmeans_k"`
	KMeansSeed    int64  `mapstructure:"kmeans_seed"`
	PostcodeMatch string `mapstructure:"postcode_match"` // outward | legacy
}

// WebConfig contains HTTP server settings
type WebConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"` // empty disables the X-API-Key check
}

// DSN returns the driver-specific data source name.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads .env, an optional config file, and the environment.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(configFile string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	// DB_HOST binds to db.host, CHART_DIR to chart.dir, and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "gp_wales")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.sqlite_path", "gp_wales.db")
	v.SetDefault("chart.enabled", true)
	v.SetDefault("chart.dir", "charts")
	v.SetDefault("analysis.top_drugs", 10)
	v.SetDefault("analysis.kmeans_k", 3)
	v.SetDefault("analysis.kmeans_seed", 42)
	v.SetDefault("analysis.postcode_match", "outward")
	v.SetDefault("web.host", "localhost")
	v.SetDefault("web.port", 8080)
	v.SetDefault("web.api_key", "")
	v.SetDefault("debug", false)

	// Env names that do not follow the section_key pattern.
	_ = v.BindEnv("chart.enabled", "CHARTS_ENABLED")
	_ = v.BindEnv("analysis.top_drugs", "TOP_DRUGS")
	_ = v.BindEnv("analysis.kmeans_k", "KMEANS_K")
	_ = v.BindEnv("analysis.kmeans_seed", "KMEANS_SEED")
	_ = v.BindEnv("analysis.postcode_match", "POSTCODE_MATCH")
	_ = v.BindEnv("db.sqlite_path", "SQLITE_PATH")
	for _, key := range []string{"db.driver", "db.host", "db.port", "db.user", "db.password",
		"db.name", "db.sslmode", "chart.dir", "web.host", "web.port", "web.api_key", "debug"} {
		_ = v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}
	switch c.Analysis.PostcodeMatch {
	case "outward", "legacy":
	default:
		return fmt.Errorf("unsupported POSTCODE_MATCH %q (want outward or legacy)", c.Analysis.PostcodeMatch)
	}
	if c.Analysis.TopDrugs < 1 {
		return fmt.Errorf("TOP_DRUGS must be positive, got %d", c.Analysis.TopDrugs)
	}
	if c.Analysis.KMeansK < 1 {
		return fmt.Errorf("KMEANS_K must be positive, got %d", c.Analysis.KMeansK)
	}
	return nil
}
