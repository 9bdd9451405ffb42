package handler

import (
	"time"

	"driftsip_admin/database"
	"driftsip_admin/model"
	"driftsip_admin/utils"
	"driftsip_admin/view"

	"github.com/gofiber/fiber/v2"
)

// GetOrderStats số liệu dashboard theo viewMode (daily/weekly/monthly/yearly)
func GetOrderStats(c *fiber.Ctx) error {
	viewMode := view.Granularity(c.Query("viewMode", string(view.Daily)))

	ref := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ngày không hợp lệ", err)
		}
		ref = parsed
	}

	var orders []model.Order
	if err := database.DB.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	current := view.FilterByDate(orders, ref, viewMode)
	previous := view.FilterByDate(orders, view.PreviousRef(ref, viewMode), viewMode)

	return c.JSON(view.ComputeStatsWithPrevious(current, previous))
}

// ExportOrders xuất CSV toàn bộ đơn hàng
func ExportOrders(c *fiber.Ctx) error {
	var orders []model.Order
	if err := database.DB.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	csvBytes, err := view.ExportCSV(orders)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xuất CSV thất bại", err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="orders_`+time.Now().Format("2006-01-02")+`.csv"`)
	return c.Send(csvBytes)
}
