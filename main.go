package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/config"
	"github.com/location-cleaner/app/controllers"
	"github.com/location-cleaner/app/services"
	"github.com/location-cleaner/internal/province"
	"github.com/location-cleaner/routes"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	loadConfig()
	if err := config.Load(viper.GetString("cleaner.config")); err != nil {
		log.Fatalf("Cannot load cleaner config: %v", err)
	}

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Location Cleaner Service",
		zap.Int("primary_threshold", config.C.PrimaryThreshold),
		zap.Int("threshold", config.C.Threshold))

	// 3. Khởi tạo identifier
	identifier := province.NewIdentifier(province.Config{
		PrimaryThreshold: config.C.PrimaryThreshold,
		Threshold:        config.C.Threshold,
	}, logger)

	// 4. Khởi tạo cache services (LRU L1 + Redis L2 nếu có)
	cacheService := initCache(logger)
	defer func() {
		if err := cacheService.Close(); err != nil {
			logger.Error("Error closing cache", zap.Error(err))
		}
	}()

	// 5. Review queue (MongoDB nếu có, ngược lại in-memory)
	reviewStore := initReviewStore(logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := reviewStore.Close(ctx); err != nil {
			logger.Error("Error closing review store", zap.Error(err))
		}
	}()

	// 6. Khởi tạo services
	locationService := services.NewLocationService(identifier, cacheService, reviewStore, config.C, logger)
	adminService := services.NewAdminService(locationService, cacheService, reviewStore, logger)

	// 7. Khởi tạo controllers
	locationController := controllers.NewLocationController(locationService, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	// 8. Khởi tạo Gin router
	if viper.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())

	// 9. Thiết lập routes
	routes.SetupAllRoutes(router, locationController, adminController)

	// 10. Khởi động server
	port := viper.GetString("app.port")
	srv := newServer(port, router)

	go func() {
		logger.Info("Location Cleaner Service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newServer giới hạn thời gian đọc request header theo config.RequestTimeout
func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: config.RequestTimeout(),
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("cleaner.config", "config/cleaner.yaml")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("mongo.url", "")
	viper.SetDefault("mongo.database", "location_cleaner")

	// REDIS_URL -> redis.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	var cfg zap.Config
	if viper.GetString("app.env") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initCache khởi tạo LRU cache, thêm Redis làm L2 khi có redis.url
func initCache(logger *zap.Logger) services.ICacheService {
	memoryCache, err := services.NewMemoryCacheService(viper.GetInt("cache.l1_size"), logger)
	if err != nil {
		logger.Fatal("Failed to initialize memory cache", zap.Error(err))
	}

	redisURL := viper.GetString("redis.url")
	if redisURL == "" {
		logger.Info("Redis not configured, using in-memory cache only")
		return memoryCache
	}

	redisCache, err := services.NewRedisCacheService(redisURL, viper.GetDuration("cache.ttl"), logger)
	if err != nil {
		logger.Warn("Failed to initialize Redis cache, using in-memory cache only", zap.Error(err))
		return memoryCache
	}

	return services.NewTieredCacheService(memoryCache, redisCache, logger)
}

// initReviewStore kết nối MongoDB cho review queue
func initReviewStore(logger *zap.Logger) services.IReviewStore {
	mongoURL := viper.GetString("mongo.url")
	if mongoURL == "" {
		logger.Info("MongoDB not configured, unmatched inputs kept in memory")
		return services.NewMemoryReviewStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	dbName := viper.GetString("mongo.database")
	store, err := services.NewMongoReviewStore(client.Database(dbName), logger)
	if err != nil {
		logger.Fatal("Failed to initialize review store", zap.Error(err))
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return store
}
