package handler

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"driftsip_admin/constants"
	"driftsip_admin/database"
	"driftsip_admin/helper"
	"driftsip_admin/model"
	"driftsip_admin/utils"
	"driftsip_admin/validate"

	"github.com/gofiber/fiber/v2"
)

// GetOrders đơn active cho live view. excludeOrderCardDeleted=true thì loại
// luôn đơn bị xóa từ order card, mặc định chỉ loại đơn bị admin xóa.
func GetOrders(c *fiber.Ctx) error {
	excludeOrderCardDeleted := c.Query("excludeOrderCardDeleted") == "true"

	query := database.DB.Order("created_at desc")
	if excludeOrderCardDeleted {
		query = query.Where("status <> ?", model.StatusDeleted)
	} else {
		query = query.Where("status <> ? OR deleted_from = ?", model.StatusDeleted, model.DeletedFromOrderCard)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}
	return c.JSON(orders)
}

// GetAdminOrders toàn bộ đơn kể cả soft-deleted, cho dashboard.
// Nhận ?limit=&page= để phân trang.
func GetAdminOrders(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if limit := c.QueryInt("limit"); limit > 0 {
		page := c.QueryInt("page", 1)
		query = utils.ApplyPagination(query, utils.Ptr(limit), utils.Ptr(page))
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}
	return c.JSON(orders)
}

func GetDeletedOrders(c *fiber.Ctx) error {
	var orders []model.Order
	if err := database.DB.
		Where("status = ?", model.StatusDeleted).
		Order("deleted_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải thùng rác", err)
	}
	return c.JSON(orders)
}

// GetArchivedOrders đơn quá 24h, đã rời khỏi live view
func GetArchivedOrders(c *fiber.Ctx) error {
	cutoff := time.Now().Add(-24 * time.Hour)
	var orders []model.Order
	if err := database.DB.
		Where("status <> ? AND created_at < ?", model.StatusDeleted, cutoff).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn lưu trữ", err)
	}
	return c.JSON(orders)
}

// UpdateOrder nhận cả partial update ({status} / {paymentStatus} / {isPaid})
// lẫn full order từ màn hình edit, phân biệt qua field items/customer
func UpdateOrder(c *fiber.Ctx) error {
	id := c.Params("orderId")

	var order model.Order
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOND, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
	}

	_, hasItems := raw["items"]
	_, hasCustomer := raw["customer"]
	if hasItems || hasCustomer {
		return fullUpdate(c, &order)
	}

	var input model.OrderUpdateInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
	}

	if input.Status != nil {
		switch *input.Status {
		case model.StatusPending, model.StatusConfirmed, model.StatusDeleted:
			order.Status = *input.Status
		default:
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái không hợp lệ", nil)
		}
	}
	if (input.PaymentStatus != nil && *input.PaymentStatus == model.PaymentPaid) ||
		(input.IsPaid != nil && *input.IsPaid) {
		order.MarkPaid()
	}

	if err := database.DB.Save(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật thất bại", err)
	}

	PublishOrderEvent("updated", order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func fullUpdate(c *fiber.Ctx, order *model.Order) error {
	var edited model.Order
	if err := c.BodyParser(&edited); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
	}

	// ID và thời điểm tạo không cho sửa
	edited.ID = order.ID
	if err := validate.EditOrder(&edited); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	edited.CreatedAt = order.CreatedAt
	if edited.Status == "" {
		edited.Status = order.Status
	}

	if err := database.DB.Save(&edited).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật thất bại", err)
	}

	PublishOrderEvent("updated", edited)
	return utils.SuccessResponse(c, fiber.StatusOK, edited)
}

// DeleteOrder soft delete kèm deletedFrom, ?permanent=true thì xóa hẳn
func DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("orderId")

	var order model.Order
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOND, err)
	}

	if c.Query("permanent") == "true" {
		if err := database.DB.Delete(&order).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa thất bại", err)
		}
		PublishOrderEvent("permanently_deleted", order)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xóa vĩnh viễn"})
	}

	deletedFrom := c.Query("deletedFrom")
	if len(c.Body()) > 0 {
		var input model.SoftDeleteInput
		if err := c.BodyParser(&input); err == nil && input.DeletedFrom != "" {
			deletedFrom = input.DeletedFrom
		}
	}
	if deletedFrom == "" {
		deletedFrom = model.DeletedFromAdmin
	}

	now := time.Now()
	order.Status = model.StatusDeleted
	order.DeletedFrom = deletedFrom
	order.DeletedAt = &now

	if err := database.DB.Save(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa thất bại", err)
	}

	PublishOrderEvent("deleted", order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// RestoreOrder khôi phục đơn từ thùng rác
func RestoreOrder(c *fiber.Ctx) error {
	id := c.Params("orderId")

	var order model.Order
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOND, err)
	}

	if order.Status != model.StatusDeleted {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng không nằm trong thùng rác", nil)
	}

	if order.Paid() {
		order.Status = model.StatusConfirmed
	} else {
		order.Status = model.StatusPending
	}
	order.DeletedFrom = ""
	order.DeletedAt = nil

	if err := database.DB.Save(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Khôi phục thất bại", err)
	}

	PublishOrderEvent("restored", order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// EmptyTrash xóa vĩnh viễn toàn bộ đơn trong thùng rác, chỉ admin được gọi
func EmptyTrash(c *fiber.Ctx) error {
	claim, ok := helper.GetInfoAccountFromToken(c)
	if !ok || !claim.IsAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	result := database.DB.Where("status = ?", model.StatusDeleted).Delete(&model.Order{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Dọn thùng rác thất bại", result.Error)
	}

	PublishOrderEvent("trash_emptied", model.Order{})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": result.RowsAffected})
}

// GetOrderReceipt chi tiết đơn + QR code để in receipt
func GetOrderReceipt(c *fiber.Ctx) error {
	id := c.Params("orderId")

	var order model.Order
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOND, err)
	}

	qrBytes, err := utils.GenerateQRCode(order.ID, 400)
	qrBase64 := ""
	if err == nil {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":  order,
		"qrCode": qrBase64,
	})
}
