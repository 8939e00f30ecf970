package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// PostgresDSN is resolved from DATABASE_URL or POSTGRES_DSN (first
	// non-empty wins), falling back to the discrete DB_* variables.
	PostgresDSN string

	MealsTable       string
	RestaurantsTable string
	OrdersTable      string

	// AllowedOrigins is the parsed ALLOWED_ORIGINS list; ["*"] when unset.
	AllowedOrigins []string

	// KafkaBroker empty means invalid-request auditing is disabled.
	KafkaBroker string
	AuditTopic  string

	PickupMinutes          int
	DeliveryMinutes        int
	ExtraRestaurantMinutes int
}

// Load reads the process environment. A missing database configuration is
// the only fatal condition: everything else has a default.
func Load() (*Config, error) {
	dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			return nil, fmt.Errorf("missing database configuration: set DATABASE_URL, POSTGRES_DSN or DB_HOST")
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_NAME", "mealdrop"))
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "8084"),
		PostgresDSN:            dsn,
		MealsTable:             getEnv("MEALS_TABLE", "meals"),
		RestaurantsTable:       getEnv("RESTAURANTS_TABLE", "restaurants"),
		OrdersTable:            getEnv("ORDERS_TABLE", "orders"),
		AllowedOrigins:         parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		KafkaBroker:            os.Getenv("KAFKA_BROKER"),
		AuditTopic:             getEnv("AUDIT_TOPIC", "invalid-requests"),
		PickupMinutes:          getEnvInt("PICKUP_MINUTES", 10),
		DeliveryMinutes:        getEnvInt("DELIVERY_MINUTES", 15),
		ExtraRestaurantMinutes: getEnvInt("EXTRA_RESTAURANT_MINUTES", 7),
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
