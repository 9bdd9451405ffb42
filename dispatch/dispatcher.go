package dispatch

import (
	"context"
	"errors"
	"log"

	"driftsip_admin/model"
	"driftsip_admin/reconcile"
	"driftsip_admin/validate"
)

// OrderService phần remote API mà dispatcher gọi
type OrderService interface {
	UpdateOrderStatus(ctx context.Context, id, status string) error
	MarkOrderAsPaid(ctx context.Context, id string) error
	UpdateOrder(ctx context.Context, id string, order model.Order) error
	DeleteOrder(ctx context.Context, id, deletedFrom string) error
	RestoreOrder(ctx context.Context, id string) error
	PermanentlyDeleteOrder(ctx context.Context, id string) error
	EmptyTrash(ctx context.Context) error
	FetchDeletedOrders(ctx context.Context) ([]model.Order, error)
}

// OverlayStore paid/recently-deleted set persist qua reload
type OverlayStore interface {
	AddPaid(ctx context.Context, orderID string) error
	RemovePaid(ctx context.Context, orderID string) error
	AddRecentlyDeleted(ctx context.Context, orderID string) error
	RemoveRecentlyDeleted(ctx context.Context, orderID string) error
}

// Confirmer hỏi user yes/no trước các action phá hủy, chặn cho tới khi trả lời
type Confirmer interface {
	Confirm(title, message string) bool
}

type ConfirmerFunc func(title, message string) bool

func (f ConfirmerFunc) Confirm(title, message string) bool { return f(title, message) }

// AutoConfirm luôn đồng ý, dùng cho test và chế độ headless
var AutoConfirm = ConfirmerFunc(func(string, string) bool { return true })

// Notifier báo lỗi/thành công dạng non-blocking, không thay thế màn hình
type Notifier interface {
	Notify(message string)
	Error(message string)
}

type LogNotifier struct{}

func (LogNotifier) Notify(message string) { log.Printf("[NOTIFY] %s", message) }
func (LogNotifier) Error(message string)  { log.Printf("[NOTIFY] error: %s", message) }

var ErrCancelled = errors.New("action cancelled")

// Dispatcher các mutation do user kích hoạt: mutate local trước (optimistic),
// gọi remote, rollback đúng state cũ nếu remote fail hết fallback.
type Dispatcher struct {
	active  *reconcile.Store // danh sách live/active
	trash   *reconcile.Store // danh sách thùng rác
	api     OrderService
	overlay OverlayStore
	confirm Confirmer
	notify  Notifier
}

func New(active, trash *reconcile.Store, api OrderService, overlay OverlayStore, confirm Confirmer, notify Notifier) *Dispatcher {
	if confirm == nil {
		confirm = AutoConfirm
	}
	if notify == nil {
		notify = LogNotifier{}
	}
	return &Dispatcher{
		active:  active,
		trash:   trash,
		api:     api,
		overlay: overlay,
		confirm: confirm,
		notify:  notify,
	}
}

// Confirm pending → confirmed. Đơn đã confirmed là no-op.
func (d *Dispatcher) Confirm(ctx context.Context, id string) error {
	order, ok := d.active.Get(id)
	if !ok {
		return errors.New("order not found: " + id)
	}
	if order.Status != model.StatusPending {
		return nil
	}

	d.active.SetProcessing(id, true)
	defer d.active.SetProcessing(id, false)
	d.active.MarkAction()

	before, _ := d.active.Mutate(id, func(o *model.Order) {
		o.Status = model.StatusConfirmed
	})

	if err := d.api.UpdateOrderStatus(ctx, id, model.StatusConfirmed); err != nil {
		d.active.Restore(before)
		d.notify.Error("Failed to confirm order: " + err.Error())
		return err
	}
	return nil
}

// MarkPaid set paid, tiện thể đẩy pending → confirmed
func (d *Dispatcher) MarkPaid(ctx context.Context, id string) error {
	order, ok := d.active.Get(id)
	if !ok {
		return errors.New("order not found: " + id)
	}
	if order.Paid() {
		return nil
	}

	d.active.SetProcessing(id, true)
	defer d.active.SetProcessing(id, false)
	d.active.MarkAction()

	before, _ := d.active.Mutate(id, func(o *model.Order) {
		o.MarkPaid()
	})
	d.active.RecordChange(id, model.ChangePaid)
	if d.overlay != nil {
		if err := d.overlay.AddPaid(ctx, id); err != nil {
			log.Printf("[DISPATCH] overlay save failed: %v", err)
		}
	}

	if err := d.api.MarkOrderAsPaid(ctx, id); err != nil {
		d.active.Restore(before)
		d.active.ClearChange(id)
		if d.overlay != nil {
			d.overlay.RemovePaid(ctx, id)
		}
		d.notify.Error("Failed to mark order as paid: " + err.Error())
		return err
	}
	return nil
}

// SoftDelete gỡ khỏi danh sách active, ghi change "deleted" chờ server xác nhận
func (d *Dispatcher) SoftDelete(ctx context.Context, id, deletedFrom string) error {
	order, ok := d.active.Get(id)
	if !ok {
		return errors.New("order not found: " + id)
	}
	if order.IsDeleted() {
		return nil
	}
	if deletedFrom == "" {
		deletedFrom = model.DeletedFromAdmin
	}

	if !d.confirm.Confirm("Delete Order", "Move this order to trash?") {
		return ErrCancelled
	}

	d.active.SetProcessing(id, true)
	defer d.active.SetProcessing(id, false)
	d.active.MarkAction()

	removed, idx, _ := d.active.Remove(id)
	d.active.RecordChange(id, model.ChangeDeleted)
	if d.overlay != nil {
		if err := d.overlay.AddRecentlyDeleted(ctx, id); err != nil {
			log.Printf("[DISPATCH] overlay save failed: %v", err)
		}
	}

	if err := d.api.DeleteOrder(ctx, id, deletedFrom); err != nil {
		d.active.InsertAt(removed, idx)
		d.active.ClearChange(id)
		if d.overlay != nil {
			d.overlay.RemoveRecentlyDeleted(ctx, id)
		}
		d.notify.Error("Failed to delete order: " + err.Error())
		return err
	}
	return nil
}

// RestoreOrder khôi phục đơn từ thùng rác
func (d *Dispatcher) RestoreOrder(ctx context.Context, id string) error {
	order, ok := d.trash.Get(id)
	if !ok {
		return errors.New("order not in trash: " + id)
	}
	if !order.IsDeleted() {
		return nil
	}

	d.trash.SetProcessing(id, true)
	defer d.trash.SetProcessing(id, false)
	d.active.MarkAction()

	removed, idx, _ := d.trash.Remove(id)
	d.active.ClearChange(id) // mark reconciled
	if d.overlay != nil {
		d.overlay.RemoveRecentlyDeleted(ctx, id)
	}

	if err := d.api.RestoreOrder(ctx, id); err != nil {
		d.trash.InsertAt(removed, idx)
		d.notify.Error("Failed to restore order: " + err.Error())
		return err
	}
	return nil
}

// PermanentlyDelete xóa hẳn, không đảo ngược được
func (d *Dispatcher) PermanentlyDelete(ctx context.Context, id string) error {
	if _, ok := d.trash.Get(id); !ok {
		return errors.New("order not in trash: " + id)
	}

	if !d.confirm.Confirm("Delete Permanently", "This action cannot be undone. Are you sure?") {
		return ErrCancelled
	}

	d.trash.SetProcessing(id, true)
	defer d.trash.SetProcessing(id, false)
	d.active.MarkAction()

	removed, idx, _ := d.trash.Remove(id)
	d.active.ClearChange(id)
	if d.overlay != nil {
		d.overlay.RemoveRecentlyDeleted(ctx, id)
	}

	if err := d.api.PermanentlyDeleteOrder(ctx, id); err != nil {
		d.trash.InsertAt(removed, idx)
		d.notify.Error("Failed to permanently delete order: " + err.Error())
		return err
	}
	return nil
}

// EmptyTrash xóa hẳn toàn bộ thùng rác; fail thì reload từ server
func (d *Dispatcher) EmptyTrash(ctx context.Context) error {
	trashed := d.trash.Orders()
	if len(trashed) == 0 {
		return nil
	}

	if !d.confirm.Confirm("Empty Trash", "Permanently delete ALL trashed orders? This cannot be undone.") {
		return ErrCancelled
	}

	d.active.MarkAction()
	d.trash.Replace(nil)

	if err := d.api.EmptyTrash(ctx); err != nil {
		if fresh, ferr := d.api.FetchDeletedOrders(ctx); ferr == nil {
			d.trash.Replace(fresh)
		} else {
			d.trash.Replace(trashed)
		}
		d.notify.Error("Failed to empty trash: " + err.Error())
		return err
	}
	return nil
}

// SaveEdit commit từ form edit: không optimistic, gọi remote trước rồi mới
// cập nhật local. totalAmount chỉ tính lại khi items có thay đổi.
func (d *Dispatcher) SaveEdit(ctx context.Context, edited model.Order) error {
	if err := validate.EditOrder(&edited); err != nil {
		d.notify.Error(err.Error())
		return err
	}

	current, ok := d.active.Get(edited.ID)
	if ok && itemsChanged(current.Items, edited.Items) {
		edited.TotalAmount = edited.ComputedTotal()
	}

	d.active.SetProcessing(edited.ID, true)
	defer d.active.SetProcessing(edited.ID, false)

	if err := d.api.UpdateOrder(ctx, edited.ID, edited); err != nil {
		d.notify.Error("Failed to update order: " + err.Error())
		return err
	}

	d.active.MarkAction()
	d.active.Mutate(edited.ID, func(o *model.Order) {
		*o = edited
	})
	d.notify.Notify("Order updated successfully")
	return nil
}

// RefreshTrash nạp thùng rác từ server
func (d *Dispatcher) RefreshTrash(ctx context.Context) error {
	orders, err := d.api.FetchDeletedOrders(ctx)
	if err != nil {
		return err
	}
	d.trash.Replace(orders)
	return nil
}

func itemsChanged(a, b []model.OrderItem) bool {
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i].Name != b[i].Name ||
			a[i].PlateType != b[i].PlateType ||
			a[i].Quantity != b[i].Quantity ||
			a[i].Price != b[i].Price {
			return true
		}
	}
	return false
}
