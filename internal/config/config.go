package config // package config loads per-service configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings normalizes service names into env prefixes
	"time"    // time parses durations for client timeouts

	"github.com/joho/godotenv" // godotenv loads an optional .env file during development

	"github.com/rentify/rental-services/internal/database"
)

// Config holds all runtime configuration for one service.  The six
// services share the same shape: an HTTP port, a MySQL connection and
// the base URLs of the collaborator services they call over HTTP.
// Values not relevant to a service are simply ignored by it.
type Config struct {
	Env     string // application environment (e.g. "dev", "prod")
	Service string // service name used in logs and port defaults
	Port    string // HTTP port to listen on

	DB database.Config // MySQL connection and pool settings

	UserServiceURL     string // base URL of the user service
	PropertyServiceURL string // base URL of the property service
	DocumentServiceURL string // base URL of the document service

	ClientTimeout         time.Duration // timeout for outbound HTTP lookups
	MaxSolicitudesActivas int           // max simultaneous PENDIENTE solicitudes per user
	BcryptCost            int           // bcrypt cost for stored claves
}

// Default ports per service.  They can always be overridden with
// <SERVICE>_PORT or APP_PORT.
var defaultPorts = map[string]string{
	"user":        "8081",
	"property":    "8082",
	"document":    "8083",
	"application": "8084",
	"contact":     "8085",
	"review":      "8086",
}

// Load reads the configuration for the named service.  Database
// variables are required and missing values cause the process to exit
// with a fatal log message; a service does not start half-configured.
// A .env file in the working directory is applied first when present
// so local runs do not need exported variables.
func Load(service string) Config {
	_ = godotenv.Load() // best effort; absence of .env is not an error

	prefix := strings.ToUpper(service)
	port := os.Getenv(prefix + "_PORT")
	if port == "" {
		port = envStr("APP_PORT", defaultPorts[service])
	}

	return Config{
		Env:     envStr("APP_ENV", "dev"),
		Service: service,
		Port:    port,

		DB: database.Config{
			User: must("DB_USER"),
			Pass: os.Getenv("DB_PASS"), // empty password allowed
			Host: must("DB_HOST"),
			Port: must("DB_PORT"),
			Name: must("DB_NAME"),

			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			PingTimeout:     envDur("DB_PING_TIMEOUT", 5*time.Second),
		},

		UserServiceURL:     envStr("USER_SERVICE_URL", "http://localhost:8081"),
		PropertyServiceURL: envStr("PROPERTY_SERVICE_URL", "http://localhost:8082"),
		DocumentServiceURL: envStr("DOCUMENT_SERVICE_URL", "http://localhost:8083"),

		ClientTimeout:         envDur("CLIENT_TIMEOUT", 5*time.Second),
		MaxSolicitudesActivas: envInt("MAX_SOLICITUDES_ACTIVAS", 3),
		BcryptCost:            envInt("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
