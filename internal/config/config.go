package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	// .env es opcional; en producción las variables vienen del entorno
	if err := godotenv.Load(); err == nil {
		log.Info("Variables cargadas desde .env")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=vnts port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET no está definido; es obligatorio")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET debe tener al menos 32 caracteres")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=vnts port=5432 sslmode=disable" {
		log.Warn("DATABASE_DSN usa el valor por defecto; configura tu propia conexión para producción")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
