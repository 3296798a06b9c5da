package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	DatabaseURL     string
	HTTPAddr        string
	JWTSecret       string
	TokenTTLMinutes int64
	AdminEmail      string
	AdminPassword   string
}

var instance *ServerConfig
var once sync.Once

// GetServerConfig loads the configuration once and returns the shared instance.
func GetServerConfig() *ServerConfig {
	once.Do(func() {
		instance = &ServerConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Info(".env file not found, using environment variables")
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get jwt secret")
		}

		instance.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
		instance.TokenTTLMinutes = getEnvAsInt("TOKEN_TTL_MINUTES", 60*24)

		// Optional bootstrap admin created at startup when both are set
		instance.AdminEmail = getEnv("ADMIN_EMAIL", "")
		instance.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
