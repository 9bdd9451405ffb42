package main

import (
	"context"
	"log"
	"time"

	"driftsip_admin/cache"
	"driftsip_admin/client"
	"driftsip_admin/config"
	"driftsip_admin/database"
	"driftsip_admin/helper"
	"driftsip_admin/model"
	"driftsip_admin/poller"
	"driftsip_admin/reconcile"
	"driftsip_admin/router"
	"driftsip_admin/session"
	"driftsip_admin/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ConfigDefault("CORS_ORIGINS", "*"),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
	}))

	database.ConnectDB()
	router.SetupRoutes(app)

	helper.StartDailyReportScheduler()
	defer helper.StopDailyReportScheduler()

	// WATCH_BASE_URL trỏ tới backend khác thì chạy thêm console theo dõi
	// đơn hàng headless: poll + reconcile + in live view ra log
	if base := config.Config("WATCH_BASE_URL"); base != "" {
		go watchOrders(base)
	}

	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8002")))
}

func watchOrders(baseURL string) {
	sess := session.New(config.Config("ADMIN_TOKEN"))
	api := client.New(baseURL, sess)
	store := reconcile.NewStore()

	overlay := cache.New(config.ConfigDefault("REDIS_ADDR", "localhost:6379"))
	ctx := context.Background()
	if paid, err := overlay.PaidIDs(ctx); err == nil {
		deleted, _ := overlay.RecentlyDeletedIDs(ctx)
		store.SeedOverlay(paid, deleted)
	} else {
		log.Printf("[WATCH] overlay cache unavailable: %v", err)
	}

	loader := poller.New(api, store, poller.Config{
		OnUpdate: func(orders []model.Order) {
			live := view.Project(orders, view.Filter{Status: "all", LiveWindow: true, Now: time.Now()})
			log.Printf("[WATCH] %d live orders", len(live))
			for _, o := range live {
				log.Printf("[WATCH]   #%s %s %s Rs.%.0f (%s)",
					o.IDSuffix(), o.Customer.Name, o.Status, o.TotalAmount, o.PaymentStatus)
			}
		},
	})

	if err := loader.Start(); err != nil {
		log.Printf("[WATCH] start failed: %v", err)
		return
	}
	select {}
}
