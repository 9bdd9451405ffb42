package database

import (
	"log"
	"time"

	"driftsip_admin/config"
	"driftsip_admin/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData tạo account admin và vài đơn mẫu cho môi trường dev
func SeedData(db *gorm.DB) {
	seedAdminAccount(db)

	if config.Config("SEED_SAMPLE_ORDERS") == "true" {
		seedSampleOrders(db)
	}
}

func seedAdminAccount(db *gorm.DB) {
	var count int64
	db.Model(&model.Account{}).Count(&count)
	if count > 0 {
		return
	}

	password := config.ConfigDefault("ADMIN_PASSWORD", "driftandsip@123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Seed admin account failed: %v", err)
		return
	}

	admin := model.Account{
		Username: config.ConfigDefault("ADMIN_USERNAME", "admin"),
		Password: string(hash),
		IsAdmin:  true,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Seed admin account failed: %v", err)
		return
	}
	log.Printf("Seeded admin account %q", admin.Username)
}

func seedSampleOrders(db *gorm.DB) {
	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	orders := []model.Order{
		{
			ID:            uuid.NewString(),
			Status:        model.StatusPending,
			PaymentStatus: model.PaymentUnpaid,
			Customer:      model.Customer{Name: "Sita Gurung", Phone: "555-1234"},
			OrderType:     "dine-in",
			TableNumber:   "4",
			Items: []model.OrderItem{
				{Name: "Momo", PlateType: model.PlateFull, Quantity: 2, Price: 180},
				{Name: "Masala Tea", PlateType: model.PlateFull, Quantity: 2, Price: 60},
			},
			TotalAmount: 480,
			CreatedAt:   now.Add(-30 * time.Minute),
		},
		{
			ID:            uuid.NewString(),
			Status:        model.StatusConfirmed,
			PaymentStatus: model.PaymentPaid,
			IsPaid:        true,
			Customer:      model.Customer{Name: "Ram Thapa", Phone: "999-0000"},
			OrderType:     "takeaway",
			Items: []model.OrderItem{
				{Name: "Chowmein", PlateType: model.PlateHalf, Quantity: 1, Price: 120},
			},
			TotalAmount: 120,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
	}

	for _, order := range orders {
		if err := db.Create(&order).Error; err != nil {
			log.Printf("Seed order failed: %v", err)
		}
	}
	log.Printf("Seeded %d sample orders", len(orders))
}
