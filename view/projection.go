package view

import (
	"strings"
	"time"

	"driftsip_admin/model"
)

const liveWindow = 24 * time.Hour

// Filter tham số hiển thị của một màn hình danh sách
type Filter struct {
	Status     string // all | pending | confirmed | deleted
	Search     string
	TrashView  bool // màn hình thùng rác riêng
	LiveWindow bool // chỉ đơn trong 24h gần nhất
	Now        time.Time
}

// Project hàm thuần: (danh sách đã reconcile, filter) → danh sách hiển thị.
// Giữ nguyên thứ tự server trả về, không re-sort.
//
// Quy tắc hiển thị:
//   - deleted + deletedFrom=admin: chỉ hiện ở trash view
//   - deleted + deletedFrom=orderCard: chỉ hiện khi filter = deleted
//   - còn lại: theo status filter, rồi search, rồi live window
func Project(orders []model.Order, f Filter) []model.Order {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.TrashView {
			if !o.IsDeleted() {
				continue
			}
		} else {
			if o.IsDeleted() && o.DeletedFrom == model.DeletedFromAdmin {
				continue
			}
			if o.IsDeleted() && o.DeletedFrom == model.DeletedFromOrderCard && f.Status != model.StatusDeleted {
				continue
			}
			if f.Status != "" && f.Status != "all" && o.Status != f.Status {
				continue
			}
		}

		if search != "" && !matchesSearch(&o, search) {
			continue
		}

		if f.LiveWindow && now.Sub(o.CreatedAt) > liveWindow {
			continue
		}

		out = append(out, o)
	}
	return out
}

// matchesSearch OR: tên khách, số điện thoại, đuôi ID
func matchesSearch(o *model.Order, search string) bool {
	if strings.Contains(strings.ToLower(o.Customer.Name), search) {
		return true
	}
	if strings.Contains(o.Customer.Phone, search) {
		return true
	}
	return strings.Contains(strings.ToLower(o.ID), search)
}
