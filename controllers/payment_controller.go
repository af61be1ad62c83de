package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhle-dev/ShopSphere/config"
	"github.com/minhle-dev/ShopSphere/gateway"
	"github.com/minhle-dev/ShopSphere/models"
	"github.com/minhle-dev/ShopSphere/store"
	"github.com/minhle-dev/ShopSphere/utils"
)

var (
	paymentBuilder   *gateway.Builder
	paymentProcessor *gateway.Processor
	frontendURL      string
)

// InitPaymentGateway wires the payment core against the database. Must be
// called after config.InitDB.
func InitPaymentGateway(cfg *config.Config) {
	orderStore := store.NewOrderStore(config.DB)
	paymentBuilder = gateway.NewBuilder(cfg.Gateway, orderStore)
	paymentProcessor = gateway.NewProcessor(cfg.Gateway, orderStore)
	frontendURL = cfg.FrontendURL
}

// POST /v1/payment/create/:orderId
func CreatePayment(c *gin.Context) {
	utils.LogInfo("CreatePayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, "Invalid order ID", err.Error())
		return
	}
	utils.LogInfo("Processing payment creation for order ID: %d, user ID: %d", orderID, user.ID)

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	// Only pending orders can be sent to the gateway
	if order.PaymentStatus != models.PaymentStatusPending {
		utils.LogError("Payment already settled for order ID: %d, status: %s", order.ID, order.PaymentStatus)
		utils.BadRequest(c, "Payment for this order has already been processed", nil)
		return
	}

	paymentURL, err := paymentBuilder.Build(&order, c.ClientIP())
	if err != nil {
		utils.LogError("Failed to build payment URL for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create payment", err.Error())
		return
	}
	utils.LogInfo("Created payment URL for order ID: %d", order.ID)

	utils.Success(c, "Payment created successfully", gin.H{
		"payment_url": paymentURL,
	})
}

// GET /v1/payment/status/:orderId
func PaymentStatus(c *gin.Context) {
	utils.LogInfo("PaymentStatus called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, "Invalid order ID", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Payment status retrieved successfully", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
		"order_status":   order.Status,
	})
}
