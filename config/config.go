package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds the board's configuration. Remote store credentials are
// optional; without them the binary runs against the local snapshot store.
type AppConfig struct {
	AppPort        string
	GinMode        string
	GinPath        string
	AllowedOrigins []string

	// DataDir holds the byte store: the snapshot collection, the device
	// identity token, and the like registry.
	DataDir string

	// Remote document store
	RemoteEnabled bool
	DatabaseURI   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string

	// Redis carries change notices for live subscriptions.
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var (
	cfg    AppConfig
	loaded bool
)

// Load reads the configuration once during boot. Precedence:
// config/config.json, then defaults, then environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}
	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "./logs/gin.log"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "./logs/hoopboard.log"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

func applyEnvOverrides(c *AppConfig) {
	c.AppPort = getEnv("APP_PORT", c.AppPort)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.GinPath = getEnv("GIN_LOG_PATH", c.GinPath)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.AllowedOrigins = parts
	}

	if v := os.Getenv("REMOTE_ENABLED"); v != "" {
		c.RemoteEnabled, _ = strconv.ParseBool(v)
	}
	c.DatabaseURI = getEnv("DATABASE_URI", c.DatabaseURI)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)

	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	if v, err := strconv.Atoi(os.Getenv("REDIS_PORT")); err == nil && v > 0 {
		c.RedisPort = v
	}
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		c.RedisDB = v
	}
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPath = getEnv("LOG_PATH", c.LogPath)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads the JSON config file into out if present. A missing
// file is not an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw struct {
		App struct {
			AppPort        string   `json:"AppPort"`
			GinMode        string   `json:"GinMode"`
			GinPath        string   `json:"GinPath"`
			AllowedOrigins []string `json:"AllowedOrigins"`
			DataDir        string   `json:"DataDir"`
			RemoteEnabled  bool     `json:"RemoteEnabled"`
		} `json:"app"`
		Database struct {
			DatabaseURI string `json:"DatabaseURI"`
			DBHost      string `json:"DBHost"`
			DBPort      string `json:"DBPort"`
			DBUser      string `json:"DBUser"`
			DBPassword  string `json:"DBPassword"`
			DBName      string `json:"DBName"`
		} `json:"database"`
		Redis struct {
			RedisHost     string `json:"RedisHost"`
			RedisPort     int    `json:"RedisPort"`
			RedisDB       int    `json:"RedisDB"`
			RedisPassword string `json:"RedisPassword"`
		} `json:"redis"`
		Log struct {
			Level      string `json:"Level"`
			Path       string `json:"Path"`
			MaxSizeMB  int    `json:"MaxSizeMB"`
			MaxBackups int    `json:"MaxBackups"`
			MaxAgeDays int    `json:"MaxAgeDays"`
			Compress   bool   `json:"Compress"`
		} `json:"log"`
	}
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	out.AppPort = raw.App.AppPort
	out.GinMode = raw.App.GinMode
	out.GinPath = raw.App.GinPath
	out.AllowedOrigins = raw.App.AllowedOrigins
	out.DataDir = raw.App.DataDir
	out.RemoteEnabled = raw.App.RemoteEnabled
	out.DatabaseURI = raw.Database.DatabaseURI
	out.DBHost = raw.Database.DBHost
	out.DBPort = raw.Database.DBPort
	out.DBUser = raw.Database.DBUser
	out.DBPassword = raw.Database.DBPassword
	out.DBName = raw.Database.DBName
	out.RedisHost = raw.Redis.RedisHost
	out.RedisPort = raw.Redis.RedisPort
	out.RedisDB = raw.Redis.RedisDB
	out.RedisPassword = raw.Redis.RedisPassword
	out.LogLevel = raw.Log.Level
	out.LogPath = raw.Log.Path
	out.LogMaxSizeMB = raw.Log.MaxSizeMB
	out.LogMaxBackups = raw.Log.MaxBackups
	out.LogMaxAgeDays = raw.Log.MaxAgeDays
	out.LogCompress = raw.Log.Compress
	return nil
}
