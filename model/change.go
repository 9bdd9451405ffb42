package model

import "time"

type ChangeKind string

const (
	ChangeDeleted ChangeKind = "deleted"
	ChangePaid    ChangeKind = "paid"
)

// LocalChange ghi lại mutation cục bộ chưa được server xác nhận.
// Chỉ tồn tại ở reconciliation layer, không gửi lên server.
type LocalChange struct {
	OrderID   string     `json:"orderId"`
	Kind      ChangeKind `json:"kind"`
	AppliedAt time.Time  `json:"appliedAt"`
}
