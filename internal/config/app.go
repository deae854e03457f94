package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Storage struct {
	Driver     string `mapstructure:"driver"` // postgres | sqlite
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Sources struct {
	CountriesURL     string `mapstructure:"countries_url"`
	ExchangeRatesURL string `mapstructure:"exchange_rates_url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
}

type Estimator struct {
	Strategy   string  `mapstructure:"strategy"` // random | fixed
	Multiplier float64 `mapstructure:"multiplier"`
}

type Scheduler struct {
	Enabled            bool `mapstructure:"enabled"`
	RefreshIntervalSec int  `mapstructure:"refresh_interval_sec"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Storage    Storage    `mapstructure:"storage"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Sources    Sources    `mapstructure:"sources"`
	Estimator  Estimator  `mapstructure:"estimator"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Cache      Cache      `mapstructure:"cache"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads the yaml file at path, then applies environment overrides.
// A missing .env file is not an error.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.sqlite_path", "data/countries.db")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("sources.countries_url", "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies")
	v.SetDefault("sources.exchange_rates_url", "https://open.er-api.com/v6/latest/USD")
	v.SetDefault("sources.timeout_seconds", 15)
	v.SetDefault("estimator.strategy", "random")
	v.SetDefault("estimator.multiplier", 1500)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.refresh_interval_sec", 3600)
	v.SetDefault("cache.max_items", 1024)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	_ = v.BindEnv("http_server.port", "PORT")

	// storage env vars
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.sqlite_path", "SQLITE_PATH")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// external sources env vars
	_ = v.BindEnv("sources.countries_url", "COUNTRIES_API_URL")
	_ = v.BindEnv("sources.exchange_rates_url", "EXCHANGE_RATES_API_URL")
	_ = v.BindEnv("sources.timeout_seconds", "SOURCES_TIMEOUT_SECONDS")

	_ = v.BindEnv("estimator.strategy", "GDP_ESTIMATOR")
	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "SCHEDULER_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
