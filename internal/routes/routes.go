package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	"github.com/BruksfildServices01/barber-payments/internal/config"
	"github.com/BruksfildServices01/barber-payments/internal/eventdedup"
	"github.com/BruksfildServices01/barber-payments/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-payments/internal/infra/repository"
	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/notify"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
	ucPayment "github.com/BruksfildServices01/barber-payments/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, gateway provider.Gateway) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	appointmentStore := infraRepo.NewAppointmentStoreGorm(db)
	barberStore := infraRepo.NewBarberStoreGorm(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyDispatcher := notify.NewDispatcher(notify.LogSender{})

	dedupGuard := eventdedup.New(cfg.RedisAddr)

	// ======================================================
	// 🧠 USE CASES (PAYMENT PIPELINE)
	// ======================================================
	transferUC := ucPayment.NewTransferFunds(
		paymentRepo,
		gateway,
		auditDispatcher,
	)

	recordSucceededUC := ucPayment.NewRecordPaymentSucceeded(
		paymentRepo,
		appointmentStore,
		barberStore,
		transferUC,
		auditDispatcher,
		notifyDispatcher,
		cfg.PlatformFeePercent,
	)

	recordFailedUC := ucPayment.NewRecordPaymentFailed(
		paymentRepo,
		appointmentStore,
		auditDispatcher,
		notifyDispatcher,
	)

	sweepUC := ucPayment.NewSweepPendingTransfers(
		paymentRepo,
		barberStore,
		transferUC,
	)

	applyTransferUC := ucPayment.NewApplyTransferEvent(
		paymentRepo,
		auditDispatcher,
	)

	retryTransferUC := ucPayment.NewRetryTransfer(
		paymentRepo,
		barberStore,
		transferUC,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	webhookHandler := handlers.NewWebhookHandler(
		cfg,
		gateway,
		dedupGuard,
		recordSucceededUC,
		recordFailedUC,
		sweepUC,
		applyTransferUC,
	)

	paymentHandler := handlers.NewPaymentHandler(db, retryTransferUC)
	connectHandler := handlers.NewConnectHandler(db, gateway)
	appointmentHandler := handlers.NewAppointmentHandler(db, gateway)

	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	// ======================================================
	// 🔔 WEBHOOKS (sem auth, autenticado por assinatura)
	// ======================================================
	r.POST("/webhooks/provider", webhookHandler.Handle)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/:slug/appointments", appointmentHandler.Create)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/appointments", appointmentHandler.ListByDate)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.GET("/me/payments", paymentHandler.List)
			secured.POST("/payments/retry-transfer/:paymentId", paymentHandler.RetryTransfer)

			// ------------------------------
			// CONNECT (onboarding do barbeiro)
			// ------------------------------
			secured.POST("/me/connect/account", connectHandler.CreateAccount)
			secured.POST("/me/connect/onboarding-link", connectHandler.OnboardingLink)
			secured.GET("/me/connect/status", connectHandler.Status)
		}
	}
}
