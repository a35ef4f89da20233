// Package config resolves runtime settings from flags, WORDLE_* environment
// variables and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Keys shared by flags, env vars (WORDLE_<KEY>) and config files.
const (
	KeyWordsFile      = "words_file"
	KeyDictFile       = "dict_file"
	KeyStatsFile      = "stats_file"
	KeyDBPath         = "db_path"
	KeyAddr           = "addr"
	KeyLogLevel       = "log_level"
	KeyDailySalt      = "daily_salt"
	KeyRateLimitRPS   = "rate_limit_rps"
	KeyRateLimitBurst = "rate_limit_burst"
)

// Config holds all runtime settings.
type Config struct {
	WordsFile      string  // answer pool; empty = embedded
	DictFile       string  // sorted dictionary; empty = embedded
	StatsFile      string  // histogram file
	DBPath         string  // SQLite history; empty disables it
	Addr           string  // HTTP listen address
	LogLevel       string
	DailySalt      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// New returns a viper instance with defaults and env binding in place.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWordsFile, "")
	v.SetDefault(KeyDictFile, "")
	v.SetDefault(KeyStatsFile, "./user_data.txt")
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyAddr, ":5175")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDailySalt, "local_dev_salt")
	v.SetDefault(KeyRateLimitRPS, 5.0)
	v.SetDefault(KeyRateLimitBurst, 10)

	v.SetEnvPrefix("WORDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and resolves v into a Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	cfg := Config{
		WordsFile:      v.GetString(KeyWordsFile),
		DictFile:       v.GetString(KeyDictFile),
		StatsFile:      v.GetString(KeyStatsFile),
		DBPath:         v.GetString(KeyDBPath),
		Addr:           v.GetString(KeyAddr),
		LogLevel:       v.GetString(KeyLogLevel),
		DailySalt:      v.GetString(KeyDailySalt),
		RateLimitRPS:   v.GetFloat64(KeyRateLimitRPS),
		RateLimitBurst: v.GetInt(KeyRateLimitBurst),
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 1
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 1
	}
	return cfg, nil
}
