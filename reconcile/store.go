package reconcile

import (
	"sync"
	"time"

	"driftsip_admin/model"

	"github.com/jinzhu/copier"
)

// GracePeriod một local change chưa được server xác nhận sẽ hết hạn sau
// khoảng này, để server truth thắng lại khi backend không bao giờ catch up.
const GracePeriod = 2 * time.Minute

// Store là nguồn sự thật cho "những gì user đang thấy": danh sách đơn hàng
// đã merge giữa server và các mutation cục bộ chưa được xác nhận.
// Đây là state chia sẻ duy nhất giữa polling loader và action dispatcher.
type Store struct {
	mu           sync.Mutex
	orders       []model.Order
	changes      map[string]model.LocalChange
	processing   map[string]bool
	lastActionAt time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		changes:    make(map[string]model.LocalChange),
		processing: make(map[string]bool),
		now:        time.Now,
	}
}

// Orders trả về deep copy, caller sửa thoải mái không đụng state
func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

func (s *Store) Get(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			var out model.Order
			copier.CopyWithOption(&out, &o, copier.Option{DeepCopy: true})
			return out, true
		}
	}
	return model.Order{}, false
}

// Merge hợp nhất snapshot S từ server với danh sách cục bộ L và change-set C:
//  1. đơn trong S có ID trong C mà state mâu thuẫn với kind đã ghi → local thắng
//     (deleted: loại khỏi kết quả; paid: overlay paid lên bản server)
//  2. đơn trong S không có trong C → lấy nguyên bản server
//  3. đơn trong L không còn trong S → chỉ giữ lại nếu ID có trong C
//  4. server đã xác nhận đúng kind → xóa ID khỏi C (một chiều, không thêm lại)
//
// Một ID không bao giờ xuất hiện hai lần trong kết quả.
func (s *Store) Merge(server []model.Order) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	merged := make([]model.Order, 0, len(server))
	seen := make(map[string]bool, len(server))

	for _, so := range server {
		if seen[so.ID] {
			continue
		}
		seen[so.ID] = true

		ch, ok := s.changes[so.ID]
		if !ok {
			merged = append(merged, so)
			continue
		}

		if now.Sub(ch.AppliedAt) > GracePeriod {
			// quá hạn chờ, server thắng lại
			delete(s.changes, so.ID)
			merged = append(merged, so)
			continue
		}

		switch ch.Kind {
		case model.ChangeDeleted:
			if so.IsDeleted() {
				delete(s.changes, so.ID) // server đã xác nhận
				merged = append(merged, so)
			}
			// server vẫn báo chưa xóa → giấu đi, chờ xác nhận
		case model.ChangePaid:
			if so.Paid() {
				delete(s.changes, so.ID)
			} else {
				so.MarkPaid()
			}
			merged = append(merged, so)
		default:
			merged = append(merged, so)
		}
	}

	for _, lo := range s.orders {
		if seen[lo.ID] {
			continue
		}
		if _, ok := s.changes[lo.ID]; ok {
			seen[lo.ID] = true
			merged = append(merged, lo)
		}
	}

	s.orders = merged
	return cloneOrders(merged)
}

// Replace thay toàn bộ danh sách, dùng cho lần load đầu và reload thùng rác
func (s *Store) Replace(orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = cloneOrders(orders)
}

func (s *Store) RecordChange(id string, kind model.ChangeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes[id] = model.LocalChange{OrderID: id, Kind: kind, AppliedAt: s.now()}
}

func (s *Store) ClearChange(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.changes, id)
}

func (s *Store) Change(id string) (model.LocalChange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.changes[id]
	return ch, ok
}

func (s *Store) ChangeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.changes)
}

// SeedOverlay nạp lại các set ID đã persist (paid / recently deleted) sau reload
func (s *Store) SeedOverlay(paidIDs, deletedIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, id := range paidIDs {
		s.changes[id] = model.LocalChange{OrderID: id, Kind: model.ChangePaid, AppliedAt: now}
	}
	for _, id := range deletedIDs {
		s.changes[id] = model.LocalChange{OrderID: id, Kind: model.ChangeDeleted, AppliedAt: now}
	}
}

// MarkAction ghi lại thời điểm user action, để loader bỏ qua poll kế tiếp
func (s *Store) MarkAction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActionAt = s.now()
}

func (s *Store) LastActionWithin(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Sub(s.lastActionAt) < d
}

// SetProcessing flag loading theo từng đơn, các đơn khác vẫn thao tác được
func (s *Store) SetProcessing(id string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.processing[id] = true
	} else {
		delete(s.processing, id)
	}
}

func (s *Store) IsProcessing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing[id]
}

// Remove gỡ đơn khỏi danh sách, trả về bản copy và vị trí để rollback đúng chỗ
func (s *Store) Remove(id string) (model.Order, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			var out model.Order
			copier.CopyWithOption(&out, &o, copier.Option{DeepCopy: true})
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return out, i, true
		}
	}
	return model.Order{}, -1, false
}

// InsertAt chèn lại đơn đã gỡ (rollback); idx ngoài phạm vi thì append
func (s *Store) InsertAt(order model.Order, idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx > len(s.orders) {
		idx = len(s.orders)
	}
	s.orders = append(s.orders[:idx], append([]model.Order{order}, s.orders[idx:]...)...)
}

// Mutate sửa một đơn tại chỗ, trả về snapshot trước khi sửa để rollback
func (s *Store) Mutate(id string, fn func(*model.Order)) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			var before model.Order
			copier.CopyWithOption(&before, &s.orders[i], copier.Option{DeepCopy: true})
			fn(&s.orders[i])
			return before, true
		}
	}
	return model.Order{}, false
}

// Restore ghi đè đơn bằng snapshot trước đó
func (s *Store) Restore(before model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == before.ID {
			s.orders[i] = before
			return
		}
	}
	s.orders = append(s.orders, before)
}

func cloneOrders(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	copier.CopyWithOption(&out, &orders, copier.Option{DeepCopy: true})
	return out
}
