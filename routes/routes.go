package routes

import (
	"github.com/SahanWeer/StayLanka/controllers"
	"github.com/SahanWeer/StayLanka/middleware"
	"github.com/SahanWeer/StayLanka/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes.
// Controllers arrive fully constructed; routing holds no state of its own.
func SetupRouter(payments *controllers.PaymentController, admin *controllers.AdminPaymentController, jwtSecret string) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.CORSMiddleware())

	api := router.Group("/v1")
	{
		pay := api.Group("/payments")
		{
			pay.POST("/checkout", payments.InitiateCheckout)
			// Server-to-server gateway callback; authenticated by md5sig,
			// not by a session.
			pay.POST("/payhere/notify", payments.Notify)
			pay.GET("/payhere/return", payments.Return)
			pay.GET("/payhere/cancel", payments.Cancel)
			pay.GET("/:order_id", payments.GetPayment)
		}

		adminGroup := api.Group("/admin/payments")
		adminGroup.Use(middleware.AdminAuthMiddleware(jwtSecret))
		{
			adminGroup.GET("", admin.ListPayments)
			adminGroup.GET("/:order_id/notifications", admin.ListNotifications)
		}
	}

	return router
}
