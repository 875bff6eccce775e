package shared

import (
	"encoding/json"
	"github.com/tailscale/hujson"
	"log"
	"os"
)

const (
	configVarName  = "CONFIG"                // If set, will load config.json from this path and not from devConfigPath
	secretsVarName = "SECRETS"               // If set, will load secrets.json from this path and not from devSecretsPath
	devConfigPath  = "dev/config.dev.jsonc"  // Path to config.json in development environment
	devSecretsPath = "dev/secrets.dev.jsonc" // Path to secrets.json in development environment
)

const (
	DriverSqlite   = "sqlite3"
	DriverPostgres = "pgx"
)

type Config struct {
	Secrets         Secrets `json:"-"`
	LogFile         string  `json:"log_file"`
	LogLevel        string  `json:"log_level"`
	ServicePort     uint    `json:"service_port"`
	Host            string  `json:"host"`
	DbDriver        string  `json:"db_driver"`
	DbFile          string  `json:"db_file"`
	DefaultTimeZone string  `json:"default_time_zone"`
	WriteRatePerSec float64 `json:"write_rate_per_sec"`
	WriteBurst      int     `json:"write_burst"`
	ProfileDir      string  `json:"profile_dir"`
	ProfileKeepDays int     `json:"profile_keep_days"`
}

type Secrets struct {
	ApiKeys     []string `json:"api_keys"`
	MetricsAuth string   `json:"metrics_auth"`
	DbDsn       string   `json:"db_dsn"`
}

func LoadConfig() *Config {

	// Where are our config and secrets files?
	cfgPath := os.Getenv(configVarName)
	if len(cfgPath) == 0 {
		cfgPath = devConfigPath
	}
	secretsPath := os.Getenv(secretsVarName)
	if len(secretsPath) == 0 {
		secretsPath = devSecretsPath
	}

	// Read config file
	var config Config
	mustDeserializeFile(cfgPath, &config)
	// Read secrets member from secrets file
	mustDeserializeFile(secretsPath, &config.Secrets)
	config.applyDefaults()
	return &config
}

func (cfg *Config) applyDefaults() {
	if cfg.DbDriver == "" {
		cfg.DbDriver = DriverSqlite
	}
	if cfg.DefaultTimeZone == "" {
		cfg.DefaultTimeZone = "UTC"
	}
	if cfg.WriteRatePerSec <= 0 {
		cfg.WriteRatePerSec = 2
	}
	if cfg.WriteBurst <= 0 {
		cfg.WriteBurst = 10
	}
	if cfg.ProfileKeepDays <= 0 {
		cfg.ProfileKeepDays = 7
	}
}

func mustDeserializeFile[T any](fileName string, obj *T) {
	var err error
	var cfgJson []byte
	cfgJson, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}
	if err = parseJSONC(cfgJson, obj); err != nil {
		log.Fatal(err)
	}
}

func parseJSONC[T any](b []byte, obj *T) error {
	// JSONC => JSON
	b, err := standardizeJSON(b)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, obj)
}

func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return b, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
