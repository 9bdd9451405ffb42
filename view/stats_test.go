package view

import (
	"strings"
	"testing"
	"time"

	"driftsip_admin/model"
)

func TestComputeStats(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, time.August, 31, hour, 0, 0, 0, time.UTC)
	}
	orders := []model.Order{
		{
			ID: "1", Status: model.StatusConfirmed, TotalAmount: 500, OrderType: "dine-in", CreatedAt: at(12),
			Items: []model.OrderItem{{Name: "Momo", PlateType: model.PlateFull, Quantity: 2}},
		},
		{
			ID: "2", Status: model.StatusConfirmed, TotalAmount: 300, OrderType: "takeaway", CreatedAt: at(12),
			Items: []model.OrderItem{{Name: "Momo", PlateType: model.PlateHalf, Quantity: 1}},
		},
		{ID: "3", Status: model.StatusPending, TotalAmount: 200, CreatedAt: at(18)},
		{
			ID: "4", Status: model.StatusDeleted, DeletedFrom: model.DeletedFromAdmin,
			TotalAmount: 150, CreatedAt: at(18),
		},
		// xóa từ order card không tính vào loss
		{
			ID: "5", Status: model.StatusDeleted, DeletedFrom: model.DeletedFromOrderCard,
			TotalAmount: 999, CreatedAt: at(20),
		},
	}

	stats := ComputeStats(orders)

	if stats.Total != 5 || stats.Confirmed != 2 || stats.Pending != 1 || stats.Deleted != 1 {
		t.Fatalf("counts wrong: %+v", stats)
	}
	if stats.Earnings != 800 {
		t.Fatalf("earnings = %.0f, want 800", stats.Earnings)
	}
	if stats.Loss != 150 {
		t.Fatalf("loss = %.0f, want 150", stats.Loss)
	}
	if stats.HourlyData[12] != 2 || stats.HourlyData[18] != 2 || stats.HourlyData[20] != 1 {
		t.Fatalf("hourly wrong: %v", stats.HourlyData)
	}
	if stats.OrderTypes["dine-in"] != 1 || stats.OrderTypes["takeaway"] != 1 {
		t.Fatalf("order types wrong: %v", stats.OrderTypes)
	}

	// cùng món khác plate type là hai entry riêng
	if len(stats.PopularItems) != 2 {
		t.Fatalf("popular items: %v", stats.PopularItems)
	}
	if stats.PopularItems[0].Item != "Momo (full)" || stats.PopularItems[0].Count != 2 {
		t.Fatalf("top item wrong: %+v", stats.PopularItems[0])
	}
}

func TestComputeStatsWithPreviousGrowth(t *testing.T) {
	current := []model.Order{{Status: model.StatusConfirmed, TotalAmount: 300}}
	previous := []model.Order{{Status: model.StatusConfirmed, TotalAmount: 200}}

	stats := ComputeStatsWithPrevious(current, previous)
	if stats.EarningsGrowth != 50 {
		t.Fatalf("growth = %.1f, want 50", stats.EarningsGrowth)
	}

	// kỳ trước bằng 0 thì không chia cho 0
	stats = ComputeStatsWithPrevious(current, nil)
	if stats.EarningsGrowth != 100 {
		t.Fatalf("growth from zero = %.1f, want 100", stats.EarningsGrowth)
	}
}

func TestTopItemsDeterministicAndCapped(t *testing.T) {
	counts := map[string]int{
		"a": 3, "b": 3, "c": 5, "d": 1, "e": 2, "f": 4, "g": 1,
	}
	items := topItems(counts, 5)
	if len(items) != 5 {
		t.Fatalf("expected top 5, got %d", len(items))
	}
	if items[0].Item != "c" || items[1].Item != "f" {
		t.Fatalf("sort by count desc broken: %+v", items)
	}
	// count bằng nhau thì sort theo tên
	if items[2].Item != "a" || items[3].Item != "b" {
		t.Fatalf("tie-break by name broken: %+v", items)
	}
}

func TestExportCSV(t *testing.T) {
	orders := []model.Order{
		{
			ID:            "abc123",
			Status:        model.StatusConfirmed,
			TotalAmount:   550,
			OrderType:     "dine-in",
			TableNumber:   "4",
			PaymentMethod: "cash",
			Customer:      model.Customer{Name: "Ram", Phone: "9855512345"},
			Items: []model.OrderItem{
				{Name: "Momo", PlateType: model.PlateFull, Quantity: 2},
				{Name: "Chowmein", PlateType: model.PlateHalf, Quantity: 1},
			},
			CreatedAt: time.Date(2026, time.August, 31, 10, 30, 0, 0, time.UTC),
		},
		{ID: "nocust", CreatedAt: time.Date(2026, time.August, 31, 11, 0, 0, 0, time.UTC)},
	}

	data, err := ExportCSV(orders)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Name,Phone") {
		t.Fatalf("header wrong: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Momo(full)x2; Chowmein(half)x1") {
		t.Fatalf("items column wrong: %s", lines[1])
	}
	if !strings.Contains(lines[1], "550.00") {
		t.Fatalf("total column wrong: %s", lines[1])
	}
	// khách trống → N/A, bàn trống → "-"
	if !strings.Contains(lines[2], "N/A") || !strings.Contains(lines[2], "-") {
		t.Fatalf("default columns wrong: %s", lines[2])
	}
}
