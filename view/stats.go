package view

import (
	"fmt"
	"sort"

	"driftsip_admin/model"
	"driftsip_admin/utils"
)

// ComputeStats tổng hợp số liệu dashboard từ danh sách đã lọc theo ngày.
// Earnings = tổng đơn confirmed, Loss = tổng đơn bị admin xóa.
func ComputeStats(orders []model.Order) model.OrderStats {
	stats := model.OrderStats{
		Total:      len(orders),
		OrderTypes: map[string]int{},
	}

	itemCounts := map[string]int{}

	for _, o := range orders {
		switch o.Status {
		case model.StatusConfirmed:
			stats.Confirmed++
			stats.Earnings += o.TotalAmount
		case model.StatusPending:
			stats.Pending++
		case model.StatusDeleted:
			if o.DeletedFrom == model.DeletedFromAdmin {
				stats.Deleted++
				stats.Loss += o.TotalAmount
			}
		}

		for _, item := range o.Items {
			key := fmt.Sprintf("%s (%s)", item.Name, item.PlateType)
			itemCounts[key] += item.Quantity
		}

		if o.OrderType != "" {
			stats.OrderTypes[o.OrderType]++
		}

		stats.HourlyData[o.CreatedAt.Hour()]++
	}

	stats.PopularItems = topItems(itemCounts, 5)
	return stats
}

// ComputeStatsWithPrevious thêm % tăng trưởng doanh thu so với kỳ trước
func ComputeStatsWithPrevious(current, previous []model.Order) model.OrderStats {
	stats := ComputeStats(current)
	prev := ComputeStats(previous)
	stats.EarningsGrowth = utils.CalculateGrowth(stats.Earnings, prev.Earnings)
	return stats
}

func topItems(counts map[string]int, n int) []model.PopularItem {
	items := make([]model.PopularItem, 0, len(counts))
	for item, count := range counts {
		items = append(items, model.PopularItem{Item: item, Count: count})
	}
	// sort ổn định để kết quả deterministic khi count bằng nhau
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Item < items[j].Item
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
