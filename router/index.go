package router

import (
	"driftsip_admin/handler"
	"driftsip_admin/middleware"
	"driftsip_admin/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	orders := api.Group("/orders", middleware.OptionalJWT())
	orders.Get("/", handler.GetOrders)
	orders.Get("/admin", handler.GetAdminOrders)
	orders.Get("/deleted", handler.GetDeletedOrders)
	orders.Get("/archived", handler.GetArchivedOrders)
	orders.Get("/export", middleware.Protected(), handler.ExportOrders)
	// empty-trash phải đứng trước /:orderId
	orders.Delete("/empty-trash", middleware.Protected(), handler.EmptyTrash)
	orders.Get("/:orderId/receipt", handler.GetOrderReceipt)
	orders.Put("/:orderId/restore", handler.RestoreOrder)
	orders.Put("/:orderId", handler.UpdateOrder)
	orders.Patch("/:orderId", handler.UpdateOrder)
	orders.Delete("/:orderId", handler.DeleteOrder)

	api.Get("/stats", middleware.OptionalJWT(), handler.GetOrderStats)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/orders", websocket.New(handler.OrdersFeed))
}
