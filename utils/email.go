package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"driftsip_admin/model"

	"gopkg.in/gomail.v2"
)

// DailyReportData dữ liệu cho email báo cáo doanh thu cuối ngày
type DailyReportData struct {
	Date         string
	Total        int
	Confirmed    int
	Pending      int
	Deleted      int
	Earnings     float64
	Loss         float64
	Growth       float64
	PopularItems []model.PopularItem
}

const dailyReportTemplate = `
<h2>Báo cáo đơn hàng ngày {{.Date}}</h2>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><td>Tổng đơn</td><td>{{.Total}}</td></tr>
  <tr><td>Đã xác nhận</td><td>{{.Confirmed}}</td></tr>
  <tr><td>Đang chờ</td><td>{{.Pending}}</td></tr>
  <tr><td>Đã xóa</td><td>{{.Deleted}}</td></tr>
  <tr><td>Doanh thu</td><td>Rs. {{printf "%.2f" .Earnings}}</td></tr>
  <tr><td>Thất thoát</td><td>Rs. {{printf "%.2f" .Loss}}</td></tr>
  <tr><td>Tăng trưởng</td><td>{{printf "%.1f" .Growth}}%</td></tr>
</table>
{{if .PopularItems}}
<h3>Món bán chạy</h3>
<ol>{{range .PopularItems}}<li>{{.Item}} × {{.Count}}</li>{{end}}</ol>
{{end}}
`

// SendDailyReportEmail gửi email báo cáo (async để không chặn scheduler)
func SendDailyReportEmail(to string, data DailyReportData) {
	go func() {
		tmpl, err := template.New("daily_report").Parse(dailyReportTemplate)
		if err != nil {
			log.Printf("Lỗi parse template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Báo cáo đơn hàng "+data.Date)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email báo cáo: %v", err)
		}
	}()
}
