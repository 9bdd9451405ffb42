package model

import "time"

// Trạng thái đơn hàng
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeleted   = "deleted"
)

const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// deletedFrom: xóa từ đâu
const (
	DeletedFromAdmin     = "admin"     // thùng rác admin, ẩn khỏi mọi view trừ trash
	DeletedFromOrderCard = "orderCard" // xóa từ order card, còn khôi phục được
)

const (
	PlateHalf = "half"
	PlateFull = "full"
)

type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address,omitempty"`
}

type OrderItem struct {
	Name      string   `json:"name" validate:"required"`
	PlateType string   `json:"plateType" validate:"omitempty,oneof=half full"`
	Quantity  int      `json:"quantity" validate:"gte=1"`
	Price     float64  `json:"price" validate:"gte=0"`
	Modifiers []string `json:"modifiers,omitempty"`
	Note      string   `json:"note,omitempty"`
}

type Order struct {
	ID                  string      `gorm:"primaryKey;size:36" json:"_id"`
	Status              string      `gorm:"index" json:"status"`
	PaymentStatus       string      `json:"paymentStatus"`
	IsPaid              bool        `json:"isPaid"`
	DeletedFrom         string      `json:"deletedFrom,omitempty"`
	Items               []OrderItem `gorm:"serializer:json" json:"items"`
	TotalAmount         float64     `json:"totalAmount"`
	Customer            Customer    `gorm:"serializer:json" json:"customer"`
	OrderType           string      `json:"orderType,omitempty"`
	TableNumber         string      `json:"tableNumber,omitempty"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	PaymentMethod       string      `json:"paymentMethod,omitempty"`
	CreatedAt           time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	DeletedAt           *time.Time  `json:"deletedAt,omitempty"`
}

func (o *Order) IsDeleted() bool {
	return o.Status == StatusDeleted
}

// Paid gom cả hai field backend trả về
func (o *Order) Paid() bool {
	return o.IsPaid || o.PaymentStatus == PaymentPaid
}

func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentPaid
	o.IsPaid = true
	if o.Status == StatusPending {
		o.Status = StatusConfirmed
	}
}

// ComputedTotal tính lại tổng tiền từ items, chỉ dùng để hiển thị.
// TotalAmount của backend vẫn được giữ nguyên khi gửi lại (trừ khi sửa items).
func (o *Order) ComputedTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// IDSuffix 6 ký tự cuối của ID, hiển thị dạng #abc123
func (o *Order) IDSuffix() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}
