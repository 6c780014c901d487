package main

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/financeflow/api/internal/config"
	"github.com/financeflow/api/internal/handler"
	"github.com/financeflow/api/internal/logging"
	"github.com/financeflow/api/internal/middleware"
	redisclient "github.com/financeflow/api/internal/redis"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/service"
	"github.com/financeflow/api/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.LogLevel, cfg.Env)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := repository.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redis, err := redisclient.NewClient(redisclient.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.RedisDialTimeout,
		PoolSize:    cfg.RedisPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- wiring ---
	blacklist := token.NewRedisBlacklist(redis.Client)
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, blacklist)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	savingsRepo := repository.NewSavingsRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	seeder := service.NewSeedService(categoryRepo, savingsRepo, budgetRepo, goalRepo)
	authSvc := service.NewAuthService(userRepo, tokens, seeder, log)
	categorySvc := service.NewCategoryService(categoryRepo)
	incomeSvc := service.NewIncomeService(incomeRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	savingsSvc := service.NewSavingsService(savingsRepo, incomeRepo, expenseRepo)
	budgetSvc := service.NewBudgetService(budgetRepo)
	goalSvc := service.NewGoalService(goalRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	incomeHandler := handler.NewIncomeHandler(incomeSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	savingsHandler := handler.NewSavingsHandler(savingsSvc)
	budgetHandler := handler.NewBudgetHandler(budgetSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)

	// Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(log))
	router.Use(middleware.Auth(tokens, cfg.ExemptPaths))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.POST("/token/refresh", authHandler.Refresh)
		api.GET("/user", authHandler.CurrentUser)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		income := api.Group("/income")
		{
			income.GET("", incomeHandler.List)
			income.POST("", incomeHandler.Create)
			income.GET("/:id", incomeHandler.Get)
			income.PUT("/:id", incomeHandler.Update)
			income.DELETE("/:id", incomeHandler.Delete)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		savings := api.Group("/savings")
		{
			savings.GET("", savingsHandler.List)
			savings.POST("", savingsHandler.Create)
			savings.GET("/:id", savingsHandler.Get)
			savings.PUT("/:id", savingsHandler.Update)
			savings.DELETE("/:id", savingsHandler.Delete)
		}

		budgets := api.Group("/budgets")
		{
			budgets.GET("", budgetHandler.List)
			budgets.POST("", budgetHandler.Create)
			budgets.GET("/:id", budgetHandler.Get)
			budgets.PUT("/:id", budgetHandler.Update)
			budgets.DELETE("/:id", budgetHandler.Delete)
		}

		goals := api.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/:id", goalHandler.Get)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
		}
	}

	log.Infof("API server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
