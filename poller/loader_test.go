package poller

import (
	"context"
	"errors"
	"testing"

	"driftsip_admin/model"
	"driftsip_admin/reconcile"
)

type fakeFetcher struct {
	orders      []model.Order
	err         error
	liveCalls   int
	adminCalls  int
	lastExclude bool
}

func (f *fakeFetcher) FetchOrders(ctx context.Context, excludeOrderCardDeleted bool) ([]model.Order, error) {
	f.liveCalls++
	f.lastExclude = excludeOrderCardDeleted
	return f.orders, f.err
}

func (f *fakeFetcher) FetchAdminOrders(ctx context.Context) ([]model.Order, error) {
	f.adminCalls++
	return f.orders, f.err
}

func TestRefreshMergesIntoStore(t *testing.T) {
	api := &fakeFetcher{orders: []model.Order{{ID: "a", Status: model.StatusPending}}}
	store := reconcile.NewStore()

	var updated []model.Order
	l := New(api, store, Config{OnUpdate: func(orders []model.Order) { updated = orders }})

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if api.liveCalls != 1 || !api.lastExclude {
		t.Fatalf("live endpoint should be hit with excludeOrderCardDeleted=true: %+v", api)
	}
	if len(updated) != 1 || updated[0].ID != "a" {
		t.Fatalf("OnUpdate got %v", updated)
	}
	if orders := store.Orders(); len(orders) != 1 {
		t.Fatalf("store not updated: %v", orders)
	}
}

func TestRefreshAdminMode(t *testing.T) {
	api := &fakeFetcher{}
	l := New(api, reconcile.NewStore(), Config{Admin: true})

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if api.adminCalls != 1 || api.liveCalls != 0 {
		t.Fatalf("admin mode should hit the admin endpoint: %+v", api)
	}
}

func TestRefreshErrorKeepsStore(t *testing.T) {
	api := &fakeFetcher{orders: []model.Order{{ID: "a", Status: model.StatusPending}}}
	store := reconcile.NewStore()
	l := New(api, store, Config{})

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	api.err = errors.New("backend down")
	api.orders = nil
	if err := l.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if orders := store.Orders(); len(orders) != 1 {
		t.Fatalf("failed refresh must keep the current list, got %v", orders)
	}
}

func TestTickSuppressedAfterUserAction(t *testing.T) {
	api := &fakeFetcher{}
	store := reconcile.NewStore()
	l := New(api, store, Config{})

	store.MarkAction()
	l.tick()
	if api.liveCalls != 0 {
		t.Fatal("tick right after a user action must be suppressed")
	}
}

func TestTickFetchErrorDoesNotPanic(t *testing.T) {
	api := &fakeFetcher{err: errors.New("backend down")}
	l := New(api, reconcile.NewStore(), Config{})

	l.tick() // chỉ log, không panic
	if api.liveCalls != 1 {
		t.Fatalf("tick should have fetched once, got %d", api.liveCalls)
	}
}

func TestConfigDefaults(t *testing.T) {
	l := New(&fakeFetcher{}, reconcile.NewStore(), Config{})
	if l.cfg.Interval != DefaultInterval {
		t.Fatalf("interval default = %s", l.cfg.Interval)
	}
	if l.cfg.Suppress != DefaultSuppress {
		t.Fatalf("suppress default = %s", l.cfg.Suppress)
	}
}
