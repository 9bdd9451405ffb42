package view

import (
	"testing"
	"time"

	"driftsip_admin/model"
)

func projOrder(id, status, deletedFrom string, age time.Duration, now time.Time) model.Order {
	return model.Order{
		ID:          id,
		Status:      status,
		DeletedFrom: deletedFrom,
		Customer:    model.Customer{Name: "Khach " + id, Phone: "55500" + id},
		CreatedAt:   now.Add(-age),
	}
}

func projIDs(orders []model.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestProjectAdminDeletedHiddenEverywhereButTrash(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		projOrder("42", model.StatusDeleted, model.DeletedFromAdmin, time.Hour, now),
		projOrder("a", model.StatusPending, "", time.Hour, now),
	}

	for _, status := range []string{"all", "pending", "confirmed", "deleted"} {
		got := Project(orders, Filter{Status: status, Now: now})
		for _, o := range got {
			if o.ID == "42" {
				t.Fatalf("admin-deleted order leaked into status=%s view", status)
			}
		}
	}

	trash := Project(orders, Filter{TrashView: true, Now: now})
	if len(trash) != 1 || trash[0].ID != "42" {
		t.Fatalf("trash view should show only admin-deleted, got %v", projIDs(trash))
	}
}

func TestProjectOrderCardDeletedOnlyInDeletedFilter(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		projOrder("oc", model.StatusDeleted, model.DeletedFromOrderCard, time.Hour, now),
		projOrder("a", model.StatusPending, "", time.Hour, now),
	}

	all := Project(orders, Filter{Status: "all", Now: now})
	if len(all) != 1 || all[0].ID != "a" {
		t.Fatalf("orderCard-deleted must be hidden from all view, got %v", projIDs(all))
	}

	deleted := Project(orders, Filter{Status: model.StatusDeleted, Now: now})
	if len(deleted) != 1 || deleted[0].ID != "oc" {
		t.Fatalf("deleted filter should show orderCard-deleted, got %v", projIDs(deleted))
	}
}

func TestProjectStatusFilter(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		projOrder("p", model.StatusPending, "", time.Hour, now),
		projOrder("c", model.StatusConfirmed, "", time.Hour, now),
	}

	got := Project(orders, Filter{Status: model.StatusPending, Now: now})
	if len(got) != 1 || got[0].ID != "p" {
		t.Fatalf("pending filter wrong: %v", projIDs(got))
	}

	got = Project(orders, Filter{Status: "all", Now: now})
	if len(got) != 2 {
		t.Fatalf("all filter wrong: %v", projIDs(got))
	}
}

func TestProjectSearchMatchesNamePhoneAndID(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		{ID: "abc123", Status: model.StatusPending, Customer: model.Customer{Name: "Ram Bahadur", Phone: "9855512345"}, CreatedAt: now},
		{ID: "xyz789", Status: model.StatusPending, Customer: model.Customer{Name: "Sita", Phone: "9800000000"}, CreatedAt: now},
	}

	cases := []struct {
		search string
		want   string
	}{
		{"ram", "abc123"},    // tên, case-insensitive
		{"555", "abc123"},    // số điện thoại
		{"xyz789", "xyz789"}, // ID
	}
	for _, c := range cases {
		got := Project(orders, Filter{Status: "all", Search: c.search, Now: now})
		if len(got) != 1 || got[0].ID != c.want {
			t.Fatalf("search %q: got %v, want [%s]", c.search, projIDs(got), c.want)
		}
	}

	if got := Project(orders, Filter{Status: "all", Search: "nomatch", Now: now}); len(got) != 0 {
		t.Fatalf("search should filter everything out, got %v", projIDs(got))
	}
}

func TestProjectLiveWindow(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		projOrder("fresh", model.StatusPending, "", 23*time.Hour, now),
		projOrder("stale", model.StatusPending, "", 25*time.Hour, now),
	}

	got := Project(orders, Filter{Status: "all", LiveWindow: true, Now: now})
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("live window wrong: %v", projIDs(got))
	}

	got = Project(orders, Filter{Status: "all", Now: now})
	if len(got) != 2 {
		t.Fatalf("without live window both should show: %v", projIDs(got))
	}
}

func TestProjectPreservesOrder(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		projOrder("3", model.StatusPending, "", time.Hour, now),
		projOrder("1", model.StatusConfirmed, "", time.Hour, now),
		projOrder("2", model.StatusPending, "", time.Hour, now),
	}

	got := Project(orders, Filter{Status: "all", Now: now})
	want := []string{"3", "1", "2"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order not preserved: %v", projIDs(got))
		}
	}
}
