package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultFile = "config.yaml"

type HTTPServer struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type DbServer struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required,numeric"`
	User     string `mapstructure:"user" validate:"required"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name" validate:"required"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}

func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type CountriesAPI struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type RatesAPI struct {
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	AccessKey    string `mapstructure:"access_key" validate:"required"`
	BaseCurrency string `mapstructure:"base_currency" validate:"len=3,uppercase,alpha"`
}

type Pipeline struct {
	CountryCodes []string `mapstructure:"country_codes" validate:"required,min=1,dive,len=3,alpha"`
	WindowDays   int      `mapstructure:"window_days" validate:"gte=1"`
}

type Output struct {
	CSVPath string `mapstructure:"csv_path" validate:"required"`
}

type Scheduler struct {
	IntervalSec int `mapstructure:"interval_sec" validate:"gte=0"`
}

func (s Scheduler) Interval() time.Duration {
	return time.Duration(s.IntervalSec) * time.Second
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer   HTTPServer   `mapstructure:"http_server"`
	DbServer     DbServer     `mapstructure:"db_server"`
	HTTPClient   HTTPClient   `mapstructure:"http_client"`
	CountriesAPI CountriesAPI `mapstructure:"countries_api"`
	RatesAPI     RatesAPI     `mapstructure:"rates_api"`
	Pipeline     Pipeline     `mapstructure:"pipeline"`
	Output       Output       `mapstructure:"output"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Logging      Logging      `mapstructure:"logging"`
}

// Init loads .env (if present) and then config.yaml from the working directory.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(DefaultFile)
}

// Load reads the yaml file at path, if it exists, on top of defaults and
// environment variables, and validates the result.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.user", "postgres")
	v.SetDefault("db_server.name", "eventigrate")
	v.SetDefault("db_server.max_conns", 4)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("countries_api.base_url", "https://restcountries.com/v2")
	v.SetDefault("rates_api.base_url", "http://data.fixer.io/api")
	v.SetDefault("rates_api.base_currency", "EUR")
	v.SetDefault("pipeline.country_codes", []string{"AUS", "BRA", "CHN", "GBR", "USA"})
	v.SetDefault("pipeline.window_days", 5)
	v.SetDefault("output.csv_path", "eventigrate.csv")
	v.SetDefault("scheduler.interval_sec", 0)
	v.SetDefault("logging.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// external apis env vars
	_ = v.BindEnv("countries_api.base_url", "COUNTRIES_API_BASE_URL")
	_ = v.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = v.BindEnv("rates_api.access_key", "RATES_API_ACCESS_KEY")

	// pipeline env vars
	_ = v.BindEnv("pipeline.country_codes", "COUNTRY_CODES")
	_ = v.BindEnv("pipeline.window_days", "WINDOW_DAYS")
	_ = v.BindEnv("output.csv_path", "CSV_PATH")
	_ = v.BindEnv("scheduler.interval_sec", "SCHEDULER_INTERVAL_SEC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
