package fx

import (
	"context"

	"Ecclesia/config"
	"Ecclesia/internal/logger"
	"Ecclesia/internal/middleware"
	"Ecclesia/internal/routes"

	docs "Ecclesia/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/register", handler.RegisterChurch)
		public.POST("/auth/login", handler.Login)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		private.GET("/me", handler.Me)

		users := private.Group("/users")
		{
			users.POST("", middleware.RequireRole("ADMIN"), handler.RegisterUser)
		}

		members := private.Group("/members")
		{
			members.POST("", handler.CreateMember)
			members.GET("", handler.ListMembers)
			members.GET("/:id", handler.GetMember)
			members.PATCH("/:id", handler.UpdateMember)
			members.DELETE("/:id", handler.DeleteMember)
		}

		categories := private.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.ListCategories)
			categories.GET("/:id", handler.GetCategory)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.ListTransactions)
			transactions.GET("/:id", handler.GetTransaction)
		}

		dailyCash := private.Group("/daily-cash")
		{
			dailyCash.POST("/open", handler.OpenDailyCash)
			dailyCash.POST("/close", handler.CloseDailyCash)
			dailyCash.GET("", handler.GetDailyCash)
			dailyCash.GET("/history", handler.ListDailyCash)
		}

		recurrences := private.Group("/recurrences")
		{
			recurrences.POST("", handler.CreateRecurrence)
			recurrences.GET("", handler.ListRecurrences)
			recurrences.GET("/:id", handler.GetRecurrence)
			recurrences.PATCH("/:id", handler.UpdateRecurrence)
		}

		payables := private.Group("/payables")
		{
			payables.POST("", handler.CreatePayable)
			payables.GET("", handler.ListPayables)
			payables.GET("/:id", handler.GetPayable)
			payables.POST("/:id/pay", handler.PayPayable)
			payables.PATCH("/:id", handler.UpdatePayable)
			payables.DELETE("/:id", handler.DeletePayable)
		}

		receivables := private.Group("/receivables")
		{
			receivables.POST("", handler.CreateReceivable)
			receivables.GET("", handler.ListReceivables)
			receivables.GET("/:id", handler.GetReceivable)
			receivables.POST("/:id/receive", handler.ReceiveReceivable)
			receivables.PATCH("/:id", handler.UpdateReceivable)
			receivables.DELETE("/:id", handler.DeleteReceivable)
		}

		dashboard := private.Group("/dashboard")
		{
			dashboard.GET("/summary", handler.GetDashboardSummary)
			dashboard.GET("/category-expenses", handler.GetDashboardCategoryExpenses)
			dashboard.GET("/recent-transactions", handler.GetDashboardRecentTransactions)
		}

		reports := private.Group("/reports")
		{
			reports.GET("/current-month", handler.GetCurrentMonthReport)
			reports.GET("/period", handler.GetPeriodReport)
		}

		notifications := private.Group("/notifications")
		{
			notifications.GET("", handler.ListNotifications)
			notifications.POST("/:id/read", handler.MarkNotificationRead)
		}

		private.GET("/audit-logs", middleware.RequireRole("ADMIN", "TREASURER"), handler.ListAuditLogs)
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
