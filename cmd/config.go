package cmd

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort                  string
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBSslMode                 string
	StorageDriver             string
	KafkaHost                 string
	KafkaShipmentChangedTopic string
	RedisAddr                 string
	RedisPassword             string
	AssetBucket               string
	AssetEndpoint             string
	AssetRegion               string
	AssetAccessKey            string
	AssetSecretKey            string
	AssetPublicBaseURL        string
	AssetURLTTL               time.Duration
	JWTSecret                 string
	StrictStatusTransitions   bool
	OverdueSweepSchedule      string
	SeedAccountIDs            []string
	SeedEnterpriseIDs         []string
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables take precedence over it.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "tracking")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("KAFKA_SHIPMENT_CHANGED_TOPIC", "shipment.changed")
	v.SetDefault("ASSET_URL_TTL", "15m")
	v.SetDefault("STRICT_STATUS_TRANSITIONS", true)
	v.SetDefault("OVERDUE_SWEEP_SCHEDULE", "0 * * * * *")

	return Config{
		HTTPPort:                  v.GetString("HTTP_PORT"),
		DBHost:                    v.GetString("DB_HOST"),
		DBPort:                    v.GetString("DB_PORT"),
		DBUser:                    v.GetString("DB_USER"),
		DBPassword:                v.GetString("DB_PASSWORD"),
		DBName:                    v.GetString("DB_NAME"),
		DBSslMode:                 v.GetString("DB_SSLMODE"),
		StorageDriver:             strings.ToLower(v.GetString("STORAGE_DRIVER")),
		KafkaHost:                 v.GetString("KAFKA_HOST"),
		KafkaShipmentChangedTopic: v.GetString("KAFKA_SHIPMENT_CHANGED_TOPIC"),
		RedisAddr:                 v.GetString("REDIS_ADDR"),
		RedisPassword:             v.GetString("REDIS_PASSWORD"),
		AssetBucket:               v.GetString("ASSET_BUCKET"),
		AssetEndpoint:             v.GetString("ASSET_ENDPOINT"),
		AssetRegion:               v.GetString("ASSET_REGION"),
		AssetAccessKey:            v.GetString("ASSET_ACCESS_KEY"),
		AssetSecretKey:            v.GetString("ASSET_SECRET_KEY"),
		AssetPublicBaseURL:        v.GetString("ASSET_PUBLIC_BASE_URL"),
		AssetURLTTL:               v.GetDuration("ASSET_URL_TTL"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		StrictStatusTransitions:   v.GetBool("STRICT_STATUS_TRANSITIONS"),
		OverdueSweepSchedule:      v.GetString("OVERDUE_SWEEP_SCHEDULE"),
		SeedAccountIDs:            splitList(v.GetString("SEED_ACCOUNT_IDS")),
		SeedEnterpriseIDs:         splitList(v.GetString("SEED_ENTERPRISE_IDS")),
	}
}

// KafkaBrokers splits KafkaHost on commas.
func (c Config) KafkaBrokers() []string {
	return splitList(c.KafkaHost)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
