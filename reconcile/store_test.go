package reconcile

import (
	"testing"
	"time"

	"driftsip_admin/model"
)

func makeOrder(id, status string) model.Order {
	return model.Order{
		ID:            id,
		Status:        status,
		PaymentStatus: model.PaymentUnpaid,
		Customer:      model.Customer{Name: "Khach " + id, Phone: "090000" + id},
		TotalAmount:   100,
		CreatedAt:     time.Now(),
	}
}

func ids(orders []model.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestMergeNoChangesTakesServerVerbatim(t *testing.T) {
	s := NewStore()
	server := []model.Order{makeOrder("a", model.StatusPending), makeOrder("b", model.StatusConfirmed)}

	merged := s.Merge(server)
	if len(merged) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(merged))
	}
	if merged[0].ID != "a" || merged[1].ID != "b" {
		t.Fatalf("server order not preserved: %v", ids(merged))
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	s := NewStore()
	s.RecordChange("b", model.ChangeDeleted)
	server := []model.Order{makeOrder("a", model.StatusPending), makeOrder("b", model.StatusPending)}

	first := s.Merge(server)
	second := s.Merge(server)

	if len(first) != len(second) {
		t.Fatalf("merge not idempotent: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Status != second[i].Status {
			t.Fatalf("merge not idempotent at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMergeDeletedChangeSuppressesUntilConfirmed(t *testing.T) {
	s := NewStore()
	s.Merge([]model.Order{makeOrder("a", model.StatusPending), makeOrder("b", model.StatusPending)})

	// local xóa "b" rồi server vẫn trả về như chưa xóa
	s.Remove("b")
	s.RecordChange("b", model.ChangeDeleted)

	merged := s.Merge([]model.Order{makeOrder("a", model.StatusPending), makeOrder("b", model.StatusPending)})
	if len(merged) != 1 || merged[0].ID != "a" {
		t.Fatalf("expected [a], got %v", ids(merged))
	}
	if _, ok := s.Change("b"); !ok {
		t.Fatal("change for b should survive until server confirms")
	}

	// server xác nhận xóa
	deleted := makeOrder("b", model.StatusDeleted)
	merged = s.Merge([]model.Order{makeOrder("a", model.StatusPending), deleted})
	if len(merged) != 2 {
		t.Fatalf("confirmed delete should re-appear, got %v", ids(merged))
	}
	if _, ok := s.Change("b"); ok {
		t.Fatal("change should be cleared after confirmation")
	}
}

func TestMergePaidChangeOverlaysServer(t *testing.T) {
	s := NewStore()
	s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	s.RecordChange("a", model.ChangePaid)

	merged := s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	if len(merged) != 1 {
		t.Fatalf("expected 1 order, got %d", len(merged))
	}
	if !merged[0].Paid() {
		t.Fatal("paid overlay should win over stale server snapshot")
	}
	if merged[0].Status != model.StatusConfirmed {
		t.Fatalf("paid overlay should also confirm, got %s", merged[0].Status)
	}

	// server bắt kịp → change bị xóa, không bao giờ thêm lại
	confirmed := makeOrder("a", model.StatusConfirmed)
	confirmed.IsPaid = true
	confirmed.PaymentStatus = model.PaymentPaid
	s.Merge([]model.Order{confirmed})
	if s.ChangeCount() != 0 {
		t.Fatal("confirmed paid change should be removed")
	}
}

func TestMergeGraceExpiryServerWins(t *testing.T) {
	s := NewStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	s.Remove("a")
	s.RecordChange("a", model.ChangeDeleted)

	// quá grace period, server chưa bao giờ xác nhận
	s.now = func() time.Time { return base.Add(GracePeriod + time.Second) }
	merged := s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	if len(merged) != 1 || merged[0].ID != "a" {
		t.Fatalf("expired change should let server win, got %v", ids(merged))
	}
	if s.ChangeCount() != 0 {
		t.Fatal("expired change should be dropped")
	}
}

func TestMergeKeepsLocalOnlyOrdersWithChanges(t *testing.T) {
	s := NewStore()
	s.Merge([]model.Order{makeOrder("a", model.StatusPending), makeOrder("b", model.StatusPending)})
	s.RecordChange("b", model.ChangePaid)

	// server snapshot thiếu "b" (backend khác page / chưa persist)
	merged := s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	if len(merged) != 2 {
		t.Fatalf("local order with pending change must be retained, got %v", ids(merged))
	}

	// không có change → đơn biến mất theo server
	s.ClearChange("b")
	merged = s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	if len(merged) != 1 || merged[0].ID != "a" {
		t.Fatalf("order without change should follow server, got %v", ids(merged))
	}
}

func TestMergeNeverDuplicatesIDs(t *testing.T) {
	s := NewStore()
	s.Merge([]model.Order{makeOrder("a", model.StatusPending)})
	s.RecordChange("a", model.ChangePaid)

	merged := s.Merge([]model.Order{
		makeOrder("a", model.StatusPending),
		makeOrder("a", model.StatusConfirmed), // server trả trùng
	})

	seen := map[string]int{}
	for _, o := range merged {
		seen[o.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Fatalf("id %s appears %d times", id, n)
		}
	}
}

func TestSeedOverlayRestoresChanges(t *testing.T) {
	s := NewStore()
	s.SeedOverlay([]string{"p1"}, []string{"d1"})

	if ch, ok := s.Change("p1"); !ok || ch.Kind != model.ChangePaid {
		t.Fatalf("paid seed missing: %+v ok=%v", ch, ok)
	}
	if ch, ok := s.Change("d1"); !ok || ch.Kind != model.ChangeDeleted {
		t.Fatalf("deleted seed missing: %+v ok=%v", ch, ok)
	}
}

func TestOrdersReturnsDeepCopy(t *testing.T) {
	s := NewStore()
	order := makeOrder("a", model.StatusPending)
	order.Items = []model.OrderItem{{Name: "Momo", Quantity: 2, Price: 50, PlateType: model.PlateFull}}
	s.Replace([]model.Order{order})

	out := s.Orders()
	out[0].Items[0].Name = "changed"
	out[0].Customer.Name = "changed"

	fresh, _ := s.Get("a")
	if fresh.Items[0].Name != "Momo" || fresh.Customer.Name != "Khach a" {
		t.Fatal("mutating the returned slice leaked into the store")
	}
}

func TestRemoveInsertAtRoundTrip(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Order{
		makeOrder("a", model.StatusPending),
		makeOrder("b", model.StatusPending),
		makeOrder("c", model.StatusPending),
	})

	removed, idx, ok := s.Remove("b")
	if !ok || idx != 1 {
		t.Fatalf("remove b: ok=%v idx=%d", ok, idx)
	}
	s.InsertAt(removed, idx)

	got := ids(s.Orders())
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rollback order mismatch: %v", got)
		}
	}
}

func TestMutateReturnsBeforeSnapshot(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Order{makeOrder("a", model.StatusPending)})

	before, ok := s.Mutate("a", func(o *model.Order) {
		o.Status = model.StatusConfirmed
	})
	if !ok || before.Status != model.StatusPending {
		t.Fatalf("before snapshot wrong: %+v", before)
	}

	cur, _ := s.Get("a")
	if cur.Status != model.StatusConfirmed {
		t.Fatalf("mutation not applied: %s", cur.Status)
	}

	s.Restore(before)
	cur, _ = s.Get("a")
	if cur.Status != model.StatusPending {
		t.Fatalf("restore failed: %s", cur.Status)
	}
}

func TestLastActionWithin(t *testing.T) {
	s := NewStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	s.MarkAction()
	if !s.LastActionWithin(6 * time.Second) {
		t.Fatal("action just happened, should be within window")
	}

	s.now = func() time.Time { return base.Add(7 * time.Second) }
	if s.LastActionWithin(6 * time.Second) {
		t.Fatal("window elapsed, should be false")
	}
}
