package main

import (
	"fmt"
	"log"

	"touravail/cfg"
	"touravail/internal/catalog"
	"touravail/internal/ota"
	"touravail/internal/search"
	"touravail/pkg/cache"
	"touravail/pkg/db"
	"touravail/pkg/idgen"
	"touravail/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// Postgres
	// ============
	pg := config.PostgresConfig
	pgDSN := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		pg.SSLMode,
	)
	sqlClient, err := db.NewSQLClient("postgres", pgDSN)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// ID generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Supplier client
	// ============
	conn := ota.NewConnection(config.Supplier)
	if missing := conn.Missing(); len(missing) > 0 {
		zlogger.Warn("supplier connection incomplete",
			logger.Field{Key: "missing", Value: missing})
	}
	supplier := ota.NewClient(conn, zlogger)

	// ============
	// Stores
	// ============
	departures := catalog.NewDepartureStore(sqlClient, zlogger)
	products := catalog.NewProductStore(sqlClient, zlogger)

	// ============
	// Internal Service
	// ============
	resolver := search.NewResolver(departures, products, conn.DepartureDefault, zlogger)
	searchSvc := search.NewService(supplier, resolver, products, redis, config.CacheTTLMinutes, ids, zlogger)
	searchHandler := search.NewHandler(searchSvc)

	// ============
	// HTTP
	// ============
	r := gin.Default()

	searchHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
