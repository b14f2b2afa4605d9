package cfg

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SupplierConfig holds the OTA supplier connection settings. Optional
// fields keep their zero value when the env var is absent.
type SupplierConfig struct {
	BaseURL          string
	Target           string
	PrimaryLang      string
	MarketCountry    string
	RequestorID      string
	MessagePassword  string
	ChainCode        string
	ProductType      string
	CategoryCode     string
	BearerToken      string
	BasicUser        string
	BasicPass        string
	TimeoutSeconds   int
	DepartureDefault string
	LOSMin           int
	LOSMax           int
}

type Config struct {
	AppEnv          string
	AppPort         string
	RedisConfig     RedisConfig
	PostgresConfig  PostgresConfig
	Supplier        SupplierConfig
	CacheTTLMinutes int
	SnowflakeNodeID int64
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := os.Getenv("REDIS_PASSWORD")

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgPort := mustEnv("POSTGRES_PORT", &errs)
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDBName := mustEnv("POSTGRES_DB", &errs)
	pgSSLMode := envOr("POSTGRES_SSLMODE", "disable")

	baseURL := mustEnv("OTA_BASE_URL", &errs)
	requestorID := mustEnv("OTA_REQUESTOR_ID", &errs)
	messagePassword := mustEnv("OTA_MESSAGE_PASSWORD", &errs)
	chainCode := mustEnv("OTA_CHAIN_CODE", &errs)

	cacheTTLMinutes := cast.ToInt(envOr("CACHE_TTL_MINUTES", "15"))
	if cacheTTLMinutes <= 0 {
		errs = append(errs, errors.New("invalid env: CACHE_TTL_MINUTES"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		PostgresConfig: PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDBName,
			SSLMode:  pgSSLMode,
		},
		Supplier: SupplierConfig{
			BaseURL:          baseURL,
			Target:           envOr("OTA_TARGET", "Production"),
			PrimaryLang:      envOr("OTA_PRIMARY_LANG", "it"),
			MarketCountry:    envOr("OTA_MARKET_COUNTRY", "it"),
			RequestorID:      requestorID,
			MessagePassword:  messagePassword,
			ChainCode:        chainCode,
			ProductType:      envOr("OTA_PRODUCT_TYPE", "Tour"),
			CategoryCode:     envOr("OTA_CATEGORY_CODE", "211"),
			BearerToken:      os.Getenv("OTA_BEARER_TOKEN"),
			BasicUser:        os.Getenv("OTA_BASIC_USER"),
			BasicPass:        os.Getenv("OTA_BASIC_PASS"),
			TimeoutSeconds:   cast.ToInt(envOr("OTA_TIMEOUT_SECONDS", "40")),
			DepartureDefault: os.Getenv("OTA_DEPARTURE_DEFAULT"),
			LOSMin:           cast.ToInt(envOr("OTA_LOS_MIN", "7")),
			LOSMax:           cast.ToInt(envOr("OTA_LOS_MAX", "14")),
		},
		CacheTTLMinutes: cacheTTLMinutes,
		SnowflakeNodeID: cast.ToInt64(envOr("SNOWFLAKE_NODE_ID", "1")),
	}, nil
}

// Timeout returns the supplier call timeout as a duration.
func (s SupplierConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
