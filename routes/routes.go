package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/minhle-dev/ShopSphere/controllers"
	"github.com/minhle-dev/ShopSphere/middleware"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Session middleware carries the payment outcome from the return
	// redirect to the result page
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "shopsphere-session-key"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60, // 1 hour
		Path:     "/",
		Secure:   false, // Set to true in production with HTTPS
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("shopsphere", store))

	api := router.Group("/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		payment := api.Group("/payment")
		{
			// Gateway-facing endpoints carry their own authentication:
			// the signature over the callback parameters.
			payment.GET("/return", controllers.PaymentReturn)
			payment.GET("/ipn", controllers.PaymentIPN)
			payment.GET("/result", controllers.PaymentResult)

			authorized := payment.Group("")
			authorized.Use(middleware.AuthMiddleware())
			{
				authorized.POST("/create/:orderId", controllers.CreatePayment)
				authorized.GET("/status/:orderId", controllers.PaymentStatus)
				authorized.GET("/receipt/:orderId", controllers.DownloadPaymentReceipt)
			}
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/payments/export", controllers.DownloadCallbackLogExcel)
		}
	}

	return router
}
