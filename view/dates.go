package view

import (
	"time"

	"driftsip_admin/model"
)

// Granularity khoảng lọc theo ngày của dashboard
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SameWeek theo tuần ISO (thứ Hai là đầu tuần). Bản cũ so day-of-week nên
// rớt đơn khi khoảng lọc vắt qua ranh giới tuần.
func SameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func SameYear(a, b time.Time) bool {
	return a.Year() == b.Year()
}

// InRange createdAt có rơi vào khoảng chứa ref không
func InRange(createdAt, ref time.Time, g Granularity) bool {
	switch g {
	case Weekly:
		return SameWeek(createdAt, ref)
	case Monthly:
		return SameMonth(createdAt, ref)
	case Yearly:
		return SameYear(createdAt, ref)
	default:
		return SameDay(createdAt, ref)
	}
}

// PreviousRef mốc của kỳ liền trước, để tính tăng trưởng
func PreviousRef(ref time.Time, g Granularity) time.Time {
	switch g {
	case Weekly:
		return ref.AddDate(0, 0, -7)
	case Monthly:
		return ref.AddDate(0, -1, 0)
	case Yearly:
		return ref.AddDate(-1, 0, 0)
	default:
		return ref.AddDate(0, 0, -1)
	}
}

func FilterByDate(orders []model.Order, ref time.Time, g Granularity) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if InRange(o.CreatedAt, ref, g) {
			out = append(out, o)
		}
	}
	return out
}
