package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"driftsip_admin/model"
)

// FetchOrders đơn hàng active cho live view
func (a *OrderAPI) FetchOrders(ctx context.Context, excludeOrderCardDeleted bool) ([]model.Order, error) {
	query := url.Values{"excludeOrderCardDeleted": {strconv.FormatBool(excludeOrderCardDeleted)}}
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchAdminOrders toàn bộ đơn hàng kể cả đã soft-delete, cho dashboard
func (a *OrderAPI) FetchAdminOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders/admin", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchDeletedOrders nội dung thùng rác
func (a *OrderAPI) FetchDeletedOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders/deleted", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *OrderAPI) FetchArchivedOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders/archived", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus PUT trước, backend cũ chỉ nhận PATCH nên có fallback
func (a *OrderAPI) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return a.fallback(ctx,
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPut, "/orders/"+id, nil, body, nil)
		},
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPatch, "/orders/"+id, nil, body, nil)
		},
	)
}

// MarkOrderAsPaid các shape payment mà từng version backend chấp nhận
func (a *OrderAPI) MarkOrderAsPaid(ctx context.Context, id string) error {
	return a.fallback(ctx,
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPut, "/orders/"+id, nil,
				map[string]string{"paymentStatus": "paid"}, nil)
		},
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPut, "/orders/"+id, nil,
				map[string]any{"isPaid": true, "status": model.StatusConfirmed}, nil)
		},
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPatch, "/orders/"+id, nil,
				map[string]string{"paymentStatus": "paid"}, nil)
		},
	)
}

// UpdateOrder full update từ màn hình edit
func (a *OrderAPI) UpdateOrder(ctx context.Context, id string, order model.Order) error {
	return a.fallback(ctx,
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPut, "/orders/"+id, nil, order, nil)
		},
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodPatch, "/orders/"+id, nil, order, nil)
		},
	)
}

// DeleteOrder soft delete kèm deletedFrom; body trước, query param là fallback
func (a *OrderAPI) DeleteOrder(ctx context.Context, id, deletedFrom string) error {
	if deletedFrom == "" {
		deletedFrom = model.DeletedFromAdmin
	}
	return a.fallback(ctx,
		func(ctx context.Context) error {
			return a.do(ctx, http.MethodDelete, "/orders/"+id, nil,
				model.SoftDeleteInput{DeletedFrom: deletedFrom}, nil)
		},
		func(ctx context.Context) error {
			query := url.Values{"deletedFrom": {deletedFrom}}
			return a.do(ctx, http.MethodDelete, "/orders/"+id, query, nil, nil)
		},
	)
}

func (a *OrderAPI) RestoreOrder(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodPut, "/orders/"+id+"/restore", nil, nil, nil)
}

func (a *OrderAPI) PermanentlyDeleteOrder(ctx context.Context, id string) error {
	query := url.Values{"permanent": {"true"}}
	return a.do(ctx, http.MethodDelete, "/orders/"+id, query, nil, nil)
}

func (a *OrderAPI) EmptyTrash(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/orders/empty-trash", nil, nil, nil)
}

func (a *OrderAPI) GetOrderStats(ctx context.Context, viewMode string) (model.OrderStats, error) {
	query := url.Values{"viewMode": {viewMode}}
	var stats model.OrderStats
	err := a.do(ctx, http.MethodGet, "/stats", query, nil, &stats)
	return stats, err
}

// ExportOrders CSV bytes
func (a *OrderAPI) ExportOrders(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/orders/export", nil)
	if err != nil {
		return nil, err
	}
	if a.tokens != nil {
		if token := a.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	res, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, &APIError{Status: res.StatusCode}
	}
	return io.ReadAll(res.Body)
}
