package validate

import (
	"errors"
	"strings"

	"driftsip_admin/model"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// EditOrder kiểm tra payload trước khi commit từ form edit.
// Tên và số điện thoại khách là bắt buộc, items phải hợp lệ.
func EditOrder(o *model.Order) error {
	if o.ID == "" {
		return errors.New("invalid order data: missing order id")
	}

	o.Customer.Name = strings.TrimSpace(o.Customer.Name)
	o.Customer.Phone = strings.TrimSpace(o.Customer.Phone)

	if o.Customer.Name == "" {
		return errors.New("customer name is required")
	}
	if o.Customer.Phone == "" {
		return errors.New("customer phone number is required")
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			item.Name = "Unnamed Item"
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.PlateType == "" {
			item.PlateType = model.PlateFull
		}
		cleaned := item.Modifiers[:0]
		for _, m := range item.Modifiers {
			if m = strings.TrimSpace(m); m != "" {
				cleaned = append(cleaned, m)
			}
		}
		item.Modifiers = cleaned

		if err := v.Struct(item); err != nil {
			return err
		}
	}

	return v.Struct(&o.Customer)
}
