package main

import (
	"log"

	"github.com/SahanWeer/StayLanka/config"
	"github.com/SahanWeer/StayLanka/controllers"
	"github.com/SahanWeer/StayLanka/repository"
	"github.com/SahanWeer/StayLanka/routes"
	"github.com/SahanWeer/StayLanka/services"
	"github.com/SahanWeer/StayLanka/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Failed to initialize database: %v", err)
		log.Fatal("Failed to initialize database:", err)
	}

	merchant := services.MerchantConfig{
		MerchantID:     cfg.MerchantID,
		MerchantSecret: cfg.MerchantSecret,
		CheckoutURL:    cfg.CheckoutURL,
		ReturnURL:      cfg.ReturnURL,
		CancelURL:      cfg.CancelURL,
		NotifyURL:      cfg.NotifyURL,
		MaxAmount:      cfg.MaxAmount,
	}

	repo := repository.NewPaymentRepository(db)
	commission := services.NewCommissionCalculator(cfg.CommissionRate, cfg.CommissionMin, cfg.CommissionMax)
	mailer := utils.NewAlertMailer(utils.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		OpsEmail: cfg.OpsEmail,
	})

	checkout := services.NewCheckoutService(repo, merchant)
	notifications := services.NewNotificationService(repo, commission, merchant, mailer)

	paymentController := controllers.NewPaymentController(checkout, notifications, repo, cfg.CheckoutURL)
	adminController := controllers.NewAdminPaymentController(repo)

	router := routes.SetupRouter(paymentController, adminController, cfg.JWTSecret)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
