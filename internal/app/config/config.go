package config

import (
	"errors"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const DefaultFrontendOrigin = "http://localhost:5173"

type Config struct {
	ServiceHost    string
	ServicePort    int
	FrontendOrigin string
	LogLevel       string
	LogFormat      string

	DB    DBConfig
	MinIO MinIOConfig
	Seed  SeedConfig
}

type DBConfig struct {
	Driver string // postgres or sqlite
	Host   string
	Port   string
	User   string
	Pass   string
	Name   string
	// Path is the database file for the sqlite driver.
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
}

type MinIOConfig struct {
	Host       string
	Port       string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string
}

// Enabled reports whether intake hand-offs should be written to MinIO.
func (m MinIOConfig) Enabled() bool {
	return m.Host != "" && m.AccessKey != "" && m.Bucket != ""
}

type SeedConfig struct {
	Defaults  bool
	RulesFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("servicehost", "0.0.0.0")
	v.SetDefault("serviceport", 8000)
	v.SetDefault("frontendorigin", DefaultFrontendOrigin)
	v.SetDefault("loglevel", "info")
	v.SetDefault("logformat", "json")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.pass", "postgres")
	v.SetDefault("db.name", "tricog")
	v.SetDefault("db.path", "tricog.db")
	v.SetDefault("db.maxopenconns", 10)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetime", 300)

	v.SetDefault("minio.host", "")
	v.SetDefault("minio.port", "9000")
	v.SetDefault("minio.accesskey", "")
	v.SetDefault("minio.secretkey", "")
	v.SetDefault("minio.bucket", "intakes")
	v.SetDefault("minio.usessl", false)
	v.SetDefault("minio.publicbase", "")

	v.SetDefault("seed.defaults", true)
	v.SetDefault("seed.rulesfile", "")
}

// env names that do not follow the SECTION_KEY pattern
var envAliases = map[string]string{
	"servicehost":        "SERVICE_HOST",
	"serviceport":        "SERVICE_PORT",
	"frontendorigin":     "FRONTEND_ORIGIN",
	"loglevel":           "LOG_LEVEL",
	"logformat":          "LOG_FORMAT",
	"db.maxopenconns":    "DB_MAX_OPEN_CONNS",
	"db.maxidleconns":    "DB_MAX_IDLE_CONNS",
	"db.connmaxlifetime": "DB_CONN_MAX_LIFETIME",
	"minio.accesskey":    "MINIO_ACCESS_KEY",
	"minio.secretkey":    "MINIO_SECRET_KEY",
	"minio.usessl":       "MINIO_USE_SSL",
	"minio.publicbase":   "MINIO_PUBLIC_BASE",
	"seed.rulesfile":     "SEED_RULES_FILE",
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	cfg, err := load(v)
	if err != nil {
		return nil, err
	}

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			level, err := log.ParseLevel(v.GetString("loglevel"))
			if err != nil {
				log.WithError(err).Warn("config changed: bad log level ignored")
				return
			}
			log.SetLevel(level)
			log.WithField("file", e.Name).Info("config reloaded")
		})
		v.WatchConfig()
	}

	log.WithField("file", v.ConfigFileUsed()).Info("config parsed")

	return cfg, nil
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	if cfg.FrontendOrigin == "" {
		cfg.FrontendOrigin = DefaultFrontendOrigin
	}
	return cfg, nil
}
