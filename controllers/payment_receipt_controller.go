package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/minhle-dev/ShopSphere/config"
	"github.com/minhle-dev/ShopSphere/models"
	"github.com/minhle-dev/ShopSphere/utils"
)

// DownloadPaymentReceipt generates and returns a PDF receipt for a paid order
func DownloadPaymentReceipt(c *gin.Context) {
	utils.LogInfo("DownloadPaymentReceipt called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("Unauthorized receipt download attempt - no user found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		utils.LogError("Invalid order ID format in receipt download request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	utils.LogInfo("Processing receipt download for order ID: %d", orderID)

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("User").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for receipt download - Order ID: %d, User ID: %d", orderID, user.ID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		utils.LogError("Receipt requested for unpaid order ID: %d, status: %s", order.ID, order.PaymentStatus)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt is only available for paid orders"})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Store info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "Shop Sphere")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "42 Market Street, District 1")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@shopsphere.dev")
	pdf.Ln(12)

	// Receipt title and payment info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(80, 8, "Transaction Ref: "+order.TxnRef)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Gateway Txn No: "+order.GatewayTxnID)
	pdf.Cell(80, 8, "Bank: "+order.BankCode)
	pdf.Ln(8)
	if order.PaidAt != nil {
		pdf.Cell(100, 8, "Paid At: "+order.PaidAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	// Customer info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.User.FirstName+" "+order.User.LastName)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Item", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.CellFormat(80, 8, item.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, fmt.Sprintf("Amount Paid: %.2f", order.PaidAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for order ID: %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}
	utils.LogInfo("Generated receipt PDF for order ID: %d", order.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
