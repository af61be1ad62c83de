package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/minhle-dev/ShopSphere/config"
	"github.com/minhle-dev/ShopSphere/models"
	"github.com/minhle-dev/ShopSphere/utils"
)

// Admin: Download gateway callback log as Excel
func DownloadCallbackLogExcel(c *gin.Context) {
	utils.LogInfo("DownloadCallbackLogExcel called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating callback log export for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var logs []models.PaymentCallbackLog
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").Find(&logs).Error; err != nil {
		utils.LogError("Failed to fetch callback logs: %v", err)
		utils.InternalServerError(c, "Failed to fetch callback logs", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d callback log entries for export", len(logs))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Gateway Callbacks")
	if err != nil {
		utils.LogError("Failed to create export sheet: %v", err)
		utils.InternalServerError(c, "Failed to create export sheet", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Received At", "Channel", "Txn Ref", "Order ID", "Response Code", "Verified", "Outcome"} {
		header.AddCell().Value = title
	}

	for _, entry := range logs {
		row := sheet.AddRow()
		row.AddCell().Value = entry.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = entry.Channel
		row.AddCell().Value = entry.TxnRef
		row.AddCell().Value = strconv.Itoa(int(entry.OrderID))
		row.AddCell().Value = entry.ResponseCode
		row.AddCell().Value = strconv.FormatBool(entry.Verified)
		row.AddCell().Value = entry.Outcome
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write callback log export: %v", err)
		utils.InternalServerError(c, "Failed to write export", err.Error())
		return
	}
	utils.LogInfo("Generated callback log export with %d entries", len(logs))

	filename := fmt.Sprintf("gateway-callbacks-%s.xlsx", now.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
