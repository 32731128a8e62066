package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	// .env only feeds the environment, real variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	_loaded = cloneDefault()

	configFile := os.Getenv("USERBOOK_CONFIG_FILE")
	if configFile == "" {
		configFile = "userbook.yaml"
	}

	log.Printf("Attempting to load config file: %s", configFile)

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file: %v, using defaults", err)
	} else {
		log.Printf("Successfully loaded config from file: %s", configFile)
	}

	ApplyEnvOverrides()

	log.Printf("Final config - DB Driver: %s, DB Host: %s, DB Database: %s",
		_loaded.Common.Database.Driver,
		_loaded.Common.Database.Postgres.Host,
		_loaded.Common.Database.Postgres.Database)
}

func LoadDefault() {
	_loaded = cloneDefault()
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Merge YAML values over defaults
	cfg := cloneDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = cfg
	return nil
}

func cloneDefault() *Config {
	cfg := defaultConfig
	return &cfg
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
// queries stay empty here, the user store fills every empty statement from
// users.DefaultQueries.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: databaseConfig{
			Driver:                "postgres",
			MaxOpenConnections:    10,
			EnableSchemaBootstrap: true,
			Postgres: postgresConfig{
				User:     "postgres",
				Password: "postgres",
				Host:     "localhost",
				Port:     5432,
				Database: "userbook",
			},
			Sqlite: sqliteConfig{
				Path: "file:userbook.db?cache=shared&mode=rwc",
			},
		},
	},
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Database databaseConfig `yaml:"database"`
	Queries  queriesConfig  `yaml:"queries"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type databaseConfig struct {
	Driver                string         `yaml:"driver"` // "postgres" or "sqlite"
	MaxOpenConnections    int            `yaml:"max_open_connections"`
	EnableSchemaBootstrap bool           `yaml:"enable_schema_bootstrap"`
	Postgres              postgresConfig `yaml:"postgres"`
	Sqlite                sqliteConfig   `yaml:"sqlite"`
}

type postgresConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

type sqliteConfig struct {
	Path string `yaml:"path"`
}

// queriesConfig holds the SQL text for the user store, one statement per operation
type queriesConfig struct {
	FindAll    string `yaml:"find_all"`
	Save       string `yaml:"save"`
	DeleteByID string `yaml:"delete_by_id"`
	GetOne     string `yaml:"get_one"`
	Update     string `yaml:"update"`
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Database() databaseConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Database
}

func Queries() queriesConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Queries
}

func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if level := os.Getenv("USERBOOK_LOG_LEVEL"); level != "" {
		_loaded.Common.Log.Level = level
	}
	if format := os.Getenv("USERBOOK_LOG_FORMAT"); format != "" {
		_loaded.Common.Log.Format = format
	}

	if httpHost := os.Getenv("USERBOOK_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("USERBOOK_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}

	if driver := os.Getenv("USERBOOK_DB_DRIVER"); driver != "" {
		_loaded.Common.Database.Driver = driver
	}
	if dbHost := os.Getenv("USERBOOK_DB_HOST"); dbHost != "" {
		_loaded.Common.Database.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("USERBOOK_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Database.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("USERBOOK_DB_USER"); dbUser != "" {
		_loaded.Common.Database.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("USERBOOK_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Database.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("USERBOOK_DB_NAME"); dbName != "" {
		_loaded.Common.Database.Postgres.Database = dbName
	}
	if sqlitePath := os.Getenv("USERBOOK_SQLITE_PATH"); sqlitePath != "" {
		_loaded.Common.Database.Sqlite.Path = sqlitePath
	}

	// SQL text overrides
	if q := os.Getenv("USERBOOK_SQL_FIND_ALL"); q != "" {
		_loaded.Common.Queries.FindAll = q
	}
	if q := os.Getenv("USERBOOK_SQL_SAVE"); q != "" {
		_loaded.Common.Queries.Save = q
	}
	if q := os.Getenv("USERBOOK_SQL_DELETE_BY_ID"); q != "" {
		_loaded.Common.Queries.DeleteByID = q
	}
	if q := os.Getenv("USERBOOK_SQL_GET_ONE"); q != "" {
		_loaded.Common.Queries.GetOne = q
	}
	if q := os.Getenv("USERBOOK_SQL_UPDATE"); q != "" {
		_loaded.Common.Queries.Update = q
	}
}
