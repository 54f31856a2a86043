package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"syntora/config"
	"syntora/handler"
	"syntora/middleware"
	"syntora/repository"
	"syntora/services"
	"syntora/usecase"
	"syntora/utils"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(statsCache *services.StatsCache, serverConfig config.ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(serverConfig.MaxBodyBytes))

	// Repositories
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	statsRepo := repository.GetStatsRepo(utils.MongoClient)
	historyRepo := repository.GetHistoryRepo(utils.MongoClient)
	usersRepo := repository.GetUsersRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	// Services
	statsService := usecase.NewStatsService(statsRepo, historyRepo, statsCache)
	tasksService := usecase.NewTasksService(tasksRepo, statsService)
	analyticsService := usecase.NewAnalyticsService(historyRepo, statsService, tasksRepo)
	userService := usecase.NewUserService(usersRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, sessionRepo)
	tasksHandler := handler.NewTasksHandler(tasksService)
	statsHandler := handler.NewStatsHandler(statsService)
	resetHandler := handler.NewDailyResetHandler(statsService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	achievementsHandler := handler.NewAchievementsHandler(tasksRepo)
	healthHandler := handler.NewHealthHandler(utils.MongoClient)

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", authHandler.Profile)
			user.POST("/logout", authHandler.Logout)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", authHandler.ActiveSessions)
			sessions.POST("/logout-all", authHandler.LogoutAll)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/", tasksHandler.List)
			tasks.POST("/", tasksHandler.Create)
			tasks.PUT("/:id", tasksHandler.Update)
			tasks.DELETE("/:id", tasksHandler.Delete)
			tasks.POST("/:id/toggle", tasksHandler.Toggle)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/", statsHandler.GetStats)
			stats.GET("/history", statsHandler.GetHistory)
		}

		protected.GET("/achievements", achievementsHandler.List)

		functions := protected.Group("/functions")
		{
			functions.POST("/daily-reset", resetHandler.Reset)
			functions.GET("/get-analytics", analyticsHandler.Get)
		}
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	redisConfig := config.LoadRedisConfig()
	serverConfig := config.LoadServerConfig()

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	statsCache, err := services.NewStatsCache(redisConfig.URL, redisConfig.StatsTTL, redisConfig.ResetLockTTL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer statsCache.Close()

	services.TokenBlacklist = services.NewTokenBlacklist(statsCache.Client())

	router := setupRouter(statsCache, serverConfig)

	srv := &http.Server{
		Addr:    ":" + serverConfig.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server shutdown complete")
}
