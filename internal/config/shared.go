package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Playlist struct {
		// 0 means the playlist may grow without limit
		MaxCapacity int `mapstructure:"max_capacity"`
	} `mapstructure:"playlist"`
	Database struct {
		Driver   string `mapstructure:"driver"` // sqlite or postgres
		Path     string `mapstructure:"path"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SeedFile string `mapstructure:"seed_file"` // YAML list of catalog tracks
	} `mapstructure:"database"`
	Library struct {
		Dir   string `mapstructure:"dir"`
		Watch bool   `mapstructure:"watch"`
	} `mapstructure:"library"`
	API struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"api"`
}

var keys = []string{
	"server.port",
	"server.metrics_port",
	"server.log_level",
	"playlist.max_capacity",
	"database.driver",
	"database.path",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.seed_file",
	"library.dir",
	"library.watch",
	"api.jwt_secret",
}

// Load reads .env, config.yaml and SPOTIFY_* environment variables, in
// increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env not loaded, using system env")
	}

	v := viper.New()
	v.SetEnvPrefix("SPOTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Defaults
	v.SetDefault("server.port", ":8081")
	v.SetDefault("server.metrics_port", ":9091")
	v.SetDefault("server.log_level", "error")
	v.SetDefault("playlist.max_capacity", 0)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "spotify.db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("library.watch", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q (SPOTIFY_DATABASE_DRIVER)", c.Database.Driver)
	}
	if c.Playlist.MaxCapacity < 0 {
		return fmt.Errorf("playlist.max_capacity must not be negative, got %d", c.Playlist.MaxCapacity)
	}
	return nil
}
