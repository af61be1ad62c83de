package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/minhle-dev/ShopSphere/config"
	"github.com/minhle-dev/ShopSphere/gateway"
	"github.com/minhle-dev/ShopSphere/models"
	"github.com/minhle-dev/ShopSphere/utils"
)

// GET /v1/payment/return
// The browser lands here after the customer finishes (or abandons) checkout
// on the gateway. This path is best-effort only: the authoritative update
// comes through the IPN, so every processing error is swallowed and the
// customer is still redirected to the result page.
func PaymentReturn(c *gin.Context) {
	utils.LogInfo("PaymentReturn called")
	params := c.Request.URL.Query()

	result, err := paymentProcessor.Process(params)
	if err != nil {
		utils.LogError("Return callback processing failed: %v", err)
	}
	recordCallback(models.CallbackChannelReturn, c.Request.URL.RawQuery, params, result, err)

	// Carry whatever the gateway supplied; missing fields stay empty.
	responseCode := params.Get(gateway.FieldResponseCode)
	txnRef := params.Get(gateway.FieldTxnRef)

	session := sessions.Default(c)
	session.Set("payment_txn_ref", txnRef)
	session.Set("payment_response_code", responseCode)
	if result != nil && result.Order != nil {
		session.Set("payment_status", result.Order.PaymentStatus)
	} else {
		session.Set("payment_status", "")
	}
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save payment result session: %v", err)
	}

	target := frontendURL + "/payment/result?" + url.Values{
		"txnRef": {txnRef},
		"code":   {responseCode},
	}.Encode()
	c.Redirect(http.StatusFound, target)
}

// GET /v1/payment/ipn
// Server-to-server notification from the gateway. This path is authoritative:
// the gateway retries until it receives the literal body "OK", so any error
// is surfaced with a non-OK body to trigger that retry. A replayed
// notification for an already-settled order is answered "OK" without
// touching anything.
func PaymentIPN(c *gin.Context) {
	utils.LogInfo("PaymentIPN called")
	params := c.Request.URL.Query()

	result, err := paymentProcessor.Process(params)
	recordCallback(models.CallbackChannelIPN, c.Request.URL.RawQuery, params, result, err)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrInvalidSignature):
			utils.LogError("IPN rejected, invalid signature for ref %s", params.Get(gateway.FieldTxnRef))
			c.String(http.StatusForbidden, "invalid signature")
		case errors.Is(err, gateway.ErrOrderNotFound):
			utils.LogError("IPN rejected, unknown ref %s", params.Get(gateway.FieldTxnRef))
			c.String(http.StatusNotFound, "order not found")
		default:
			utils.LogError("IPN processing failed: %v", err)
			c.String(http.StatusInternalServerError, "processing failed")
		}
		return
	}

	if result.AlreadyFinal {
		utils.LogInfo("IPN replay for ref %s, order already %s", result.TxnRef, result.Order.PaymentStatus)
	} else if result.Order.PaymentStatus == models.PaymentStatusPaid {
		utils.LogInfo("Order ID: %d marked PAID via IPN", result.Order.ID)
		notifyPaymentConfirmed(result.Order)
	} else {
		utils.LogInfo("Order ID: %d marked FAILED via IPN: %s", result.Order.ID, result.Order.FailureReason)
	}

	c.String(http.StatusOK, "OK")
}

// GET /v1/payment/result
// Serves the outcome stashed by PaymentReturn so the result page can render
// without re-presenting gateway parameters.
func PaymentResult(c *gin.Context) {
	session := sessions.Default(c)
	txnRef, _ := session.Get("payment_txn_ref").(string)
	responseCode, _ := session.Get("payment_response_code").(string)
	status, _ := session.Get("payment_status").(string)

	utils.Success(c, "Payment result retrieved successfully", gin.H{
		"txn_ref":        txnRef,
		"response_code":  responseCode,
		"payment_status": status,
	})
}

// recordCallback appends an audit row for an inbound callback. Failures here
// must never affect callback handling.
func recordCallback(channel, rawQuery string, params url.Values, result *gateway.Result, procErr error) {
	entry := models.PaymentCallbackLog{
		Channel:      channel,
		TxnRef:       params.Get(gateway.FieldTxnRef),
		ResponseCode: params.Get(gateway.FieldResponseCode),
		RawQuery:     rawQuery,
		Verified:     !errors.Is(procErr, gateway.ErrInvalidSignature),
	}
	switch {
	case errors.Is(procErr, gateway.ErrInvalidSignature):
		entry.Outcome = "rejected"
	case procErr != nil:
		entry.Outcome = "error"
	case result.AlreadyFinal:
		entry.Outcome = "noop"
	case result.Order.PaymentStatus == models.PaymentStatusPaid:
		entry.Outcome = "paid"
	default:
		entry.Outcome = "failed"
	}
	if result != nil && result.Order != nil {
		entry.OrderID = result.Order.ID
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Failed to record %s callback for ref %s: %v", channel, entry.TxnRef, err)
	}
}

// notifyPaymentConfirmed emails the order's owner about the settled payment.
// Best-effort: a mail failure never fails the IPN.
func notifyPaymentConfirmed(order *models.Order) {
	var user models.User
	if err := config.DB.First(&user, order.UserID).Error; err != nil {
		utils.LogError("Failed to load user %d for payment confirmation email: %v", order.UserID, err)
		return
	}
	if err := utils.SendPaymentConfirmationEmail(user.Email, order); err != nil {
		utils.LogError("Failed to send payment confirmation email for order %d: %v", order.ID, err)
		return
	}
	utils.LogInfo("Payment confirmation email sent for order ID: %d", order.ID)
}
