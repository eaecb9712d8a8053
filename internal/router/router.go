package router

import (
	"log/slog"

	"github.com/Shaurya01836/Flux-Wallet/internal/config"
	"github.com/Shaurya01836/Flux-Wallet/internal/handler"
	"github.com/Shaurya01836/Flux-Wallet/internal/middleware"
	"github.com/Shaurya01836/Flux-Wallet/internal/repository"
	"github.com/Shaurya01836/Flux-Wallet/internal/service"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers into a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, cipher *util.FieldCipher, log *slog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	userService := service.NewUserService(userRepo, budgetRepo)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, cipher, log)

	// ====== API ======
	api := r.Group("/api")

	// 登录接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(userService, cfg.JWT.Secret, cfg.Google.ClientID, cfg.JWT.ExpireHours)
	api.POST("/auth/google", authHandler.GoogleLogin)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.App.PageSize)
	protected.POST("/payments", paymentHandler.CreatePayment)
	protected.GET("/payments/user/:userId", paymentHandler.ListPayments)
	protected.DELETE("/payments/:id", paymentHandler.DeletePayment)
	protected.GET("/payments/balance/:userId", paymentHandler.GetBalance)

	exportHandler := handler.NewExportHandler(paymentService)
	protected.GET("/payments/export/csv", exportHandler.ExportCSV)
	protected.GET("/payments/export/xlsx", exportHandler.ExportXLSX)

	userHandler := handler.NewUserHandler(userService)
	protected.PUT("/user/:id", userHandler.UpdateUserInfo)
	protected.POST("/user/budget", userHandler.AddBudget)
	protected.GET("/user/budget/:userId", userHandler.GetBudget)

	return r
}
