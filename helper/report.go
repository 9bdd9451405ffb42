package helper

import (
	"log"
	"time"

	"driftsip_admin/config"
	"driftsip_admin/database"
	"driftsip_admin/model"
	"driftsip_admin/utils"
	"driftsip_admin/view"

	"github.com/robfig/cron/v3"
)

var reportCron *cron.Cron

// StartDailyReportScheduler gửi báo cáo doanh thu lúc 21:00 mỗi ngày
func StartDailyReportScheduler() {
	to := config.Config("REPORT_EMAIL")
	if to == "" {
		log.Println("[CRON] REPORT_EMAIL not set, daily report disabled")
		return
	}

	reportCron = cron.New()
	_, err := reportCron.AddFunc("0 21 * * *", func() {
		SendDailyReport(to, time.Now())
	})
	if err != nil {
		log.Printf("[CRON] daily report schedule failed: %v", err)
		return
	}
	reportCron.Start()
	log.Println("[CRON] daily report scheduler started")
}

func StopDailyReportScheduler() {
	if reportCron != nil {
		reportCron.Stop()
	}
}

// SendDailyReport tổng hợp số liệu của ngày và email cho chủ quán
func SendDailyReport(to string, day time.Time) {
	log.Println("[CRON] SendDailyReport triggered")

	var orders []model.Order
	if err := database.DB.Find(&orders).Error; err != nil {
		log.Printf("[CRON] load orders failed: %v", err)
		return
	}

	today := view.FilterByDate(orders, day, view.Daily)
	yesterday := view.FilterByDate(orders, view.PreviousRef(day, view.Daily), view.Daily)
	stats := view.ComputeStatsWithPrevious(today, yesterday)

	utils.SendDailyReportEmail(to, utils.DailyReportData{
		Date:         day.Format("02/01/2006"),
		Total:        stats.Total,
		Confirmed:    stats.Confirmed,
		Pending:      stats.Pending,
		Deleted:      stats.Deleted,
		Earnings:     stats.Earnings,
		Loss:         stats.Loss,
		Growth:       stats.EarningsGrowth,
		PopularItems: stats.PopularItems,
	})
}
