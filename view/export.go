package view

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"driftsip_admin/model"
)

// ExportCSV xuất danh sách đơn hàng ra CSV, cùng cột với dashboard cũ
func ExportCSV(orders []model.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Phone", "Type", "Table", "Items", "Total", "Status", "Payment", "Date"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range orders {
		table := o.TableNumber
		if table == "" {
			table = "-"
		}
		row := []string{
			o.ID,
			orDefault(o.Customer.Name, "N/A"),
			orDefault(o.Customer.Phone, "N/A"),
			o.OrderType,
			table,
			formatItems(o.Items),
			fmt.Sprintf("%.2f", o.TotalAmount),
			o.Status,
			o.PaymentMethod,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatItems(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s(%s)x%d", item.Name, item.PlateType, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
