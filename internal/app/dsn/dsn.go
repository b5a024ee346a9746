package dsn

import (
	"fmt"
	"os"

	"github.com/matrukan/tricog/internal/app/config"
)

// Postgres builds a libpq DSN from the database section of the config.
func Postgres(cfg config.DBConfig) string {
	host := orDefault(cfg.Host, "localhost")
	port := orDefault(cfg.Port, "5432")
	user := orDefault(cfg.User, "postgres")
	pass := orDefault(cfg.Pass, "postgres")
	dbname := orDefault(cfg.Name, "tricog")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
}

// FromEnv reads DB_HOST, DB_PORT, DB_USER, DB_PASS and DB_NAME directly.
func FromEnv() string {
	return Postgres(config.DBConfig{
		Host: os.Getenv("DB_HOST"),
		Port: os.Getenv("DB_PORT"),
		User: os.Getenv("DB_USER"),
		Pass: os.Getenv("DB_PASS"),
		Name: os.Getenv("DB_NAME"),
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
