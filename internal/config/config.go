package config

import (
	"log"
	"os"
)

type Config struct {
	Port        string
	DBDSN       string
	MediaDir    string
	LogFile     string
	JWTSecret   string
	FrontendURL string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "totomotorworx.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./upload/images"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./totomotorworx.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Dev fallback only; deployments set JWT_SECRET.
		secret = "secret_ecom"
	}
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, JWTSecret: secret, FrontendURL: frontend}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s FRONTEND_URL=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.FrontendURL)
	return cfg
}
