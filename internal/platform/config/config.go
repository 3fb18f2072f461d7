package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	StorageDriver string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	Location      *time.Location

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	IntakeRateLimit    string
	PortalRateLimit    string

	CreditPackagesFile string

	KafkaBrokers           []string
	KafkaNotificationTopic string
	AMQPURL                string
	AMQPSaleOrderQueue     string

	SchedulerEnabled    bool
	CronExpirySpec      string
	CronMonthlySpec     string
	RenewalReminderDays int

	OTELEnabled     bool
	OTELServiceName string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "cowork-membership-app")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("INTAKE_RATE_LIMIT", "10-M")
	viper.SetDefault("PORTAL_RATE_LIMIT", "60-M")
	viper.SetDefault("CREDIT_PACKAGES_FILE", "config/credit_packages.yaml")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_NOTIFICATION_TOPIC", "cowork.notifications")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_SALE_ORDER_QUEUE", "sale_order.confirmed")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("CRON_EXPIRY_SPEC", "15 0 * * *")
	viper.SetDefault("CRON_MONTHLY_SPEC", "30 0 * * *")
	viper.SetDefault("RENEWAL_REMINDER_DAYS", 7)
	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_SERVICE_NAME", "cowork-membership-app")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory {
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StoragePostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	tz := viper.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.Location = loc

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.IntakeRateLimit = viper.GetString("INTAKE_RATE_LIMIT")
	cfg.PortalRateLimit = viper.GetString("PORTAL_RATE_LIMIT")
	cfg.CreditPackagesFile = viper.GetString("CREDIT_PACKAGES_FILE")

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaNotificationTopic = viper.GetString("KAFKA_NOTIFICATION_TOPIC")
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Notifications will only be logged.")
	}
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPSaleOrderQueue = viper.GetString("AMQP_SALE_ORDER_QUEUE")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Sale-order confirmations will not be consumed.")
	}

	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")
	cfg.CronExpirySpec = viper.GetString("CRON_EXPIRY_SPEC")
	cfg.CronMonthlySpec = viper.GetString("CRON_MONTHLY_SPEC")
	cfg.RenewalReminderDays = viper.GetInt("RENEWAL_REMINDER_DAYS")
	if cfg.RenewalReminderDays <= 0 {
		cfg.RenewalReminderDays = 7
	}

	cfg.OTELEnabled = viper.GetBool("OTEL_ENABLED")
	cfg.OTELServiceName = viper.GetString("OTEL_SERVICE_NAME")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
