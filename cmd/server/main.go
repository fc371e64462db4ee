package main

import (
	"context"                        // context package is needed for Redis operations
	"user_admin/internal/api"        // Custom package for API handlers
	"user_admin/internal/config"     // Custom package for configuration
	"user_admin/internal/credential" // Password digest and rotation
	"user_admin/internal/db"         // Database connection
	"user_admin/internal/middleware" // Custom package for middleware
	"user_admin/internal/policy"     // Deletion guard
	"user_admin/internal/service"    // Account and dashboard operations
	"user_admin/internal/session"    // Redis backed login sessions
	"user_admin/internal/store"      // GORM repositories

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Password digest shared by login, account writes and rotation
	digester, err := credential.NewDigester(cfg.PasswordDigest)
	if err != nil {
		logrus.Fatalf("invalid password digest: %v", err)
	}

	users := store.NewUserStore(gdb)                                                           // Account repository
	sessions := session.NewStore(redisClient, cfg.JWTSecret, cfg.SessionTTL, cfg.SuperAdminID) // Login sessions
	rotator := credential.NewRotator(users, sessions, cfg, digester)                           // Password rotation
	guard := policy.NewDeletionGuard(cfg.ProtectedID)                                          // Deletion rules
	svc := service.NewAdminService(users, store.NewMetricsSource(gdb), guard, rotator, digester)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/login", api.LoginHandler(svc, sessions)) // Login endpoint
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.JWTAuthMiddleware(sessions), middleware.ActiveAccountMiddleware(gdb))
	authGroup.POST("/logout", api.LogoutHandler(sessions)) // Logout endpoint

	// Account routes (protected by JWT, active accounts only)
	userGroup := r.Group("/sys/user")
	userGroup.Use(middleware.JWTAuthMiddleware(sessions), middleware.ActiveAccountMiddleware(gdb))
	userGroup.GET("/info", api.InfoHandler(svc))                         // Own account endpoint
	userGroup.POST("/password", api.PasswordHandler(svc))                // Change password endpoint
	userGroup.GET("/list", api.ListUsersHandler(svc, redisClient))       // List accounts endpoint
	userGroup.GET("/info/:userId", api.UserInfoHandler(svc))             // Account detail endpoint
	userGroup.POST("/save", api.SaveUserHandler(svc, redisClient))       // Create account endpoint
	userGroup.POST("/update", api.UpdateUserHandler(svc, redisClient))   // Update account endpoint
	userGroup.POST("/delete", api.DeleteUsersHandler(svc, redisClient))  // Delete accounts endpoint
	userGroup.GET("/countTotalUser", api.OverviewHandler(svc))           // Dashboard totals endpoint
	userGroup.GET("/price", api.SalesChartHandler(svc, redisClient))     // Sales amount charts endpoint
	userGroup.GET("/shopping", api.VolumeChartHandler(svc, redisClient)) // Sales volume charts endpoint

	logrus.Info("Server running on " + cfg.AppPort)  // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
