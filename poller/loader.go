package poller

import (
	"context"
	"log"
	"time"

	"driftsip_admin/model"
	"driftsip_admin/reconcile"

	"github.com/go-co-op/gocron/v2"
)

const (
	DefaultInterval = 3 * time.Second
	// sau một user action, bỏ qua poll trong khoảng này để backend kịp persist,
	// tránh optimistic update bị revert trước mắt user
	DefaultSuppress = 6 * time.Second
)

// ListFetcher phần API mà loader cần
type ListFetcher interface {
	FetchOrders(ctx context.Context, excludeOrderCardDeleted bool) ([]model.Order, error)
	FetchAdminOrders(ctx context.Context) ([]model.Order, error)
}

type Config struct {
	Admin    bool // fetch cả đơn đã soft-delete (dashboard)
	Interval time.Duration
	Suppress time.Duration
	OnUpdate func([]model.Order) // gọi sau mỗi lần merge thành công
}

// Loader giữ danh sách local xấp xỉ fresh mà không cần user làm gì
type Loader struct {
	api   ListFetcher
	store *reconcile.Store
	cfg   Config
	sched gocron.Scheduler
}

func New(api ListFetcher, store *reconcile.Store, cfg Config) *Loader {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Suppress <= 0 {
		cfg.Suppress = DefaultSuppress
	}
	return &Loader{api: api, store: store, cfg: cfg}
}

// Start chạy poll định kỳ cho tới khi Stop
func (l *Loader) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	l.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(l.cfg.Interval),
		gocron.NewTask(l.tick),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("[POLL] started, interval=%s admin=%v", l.cfg.Interval, l.cfg.Admin)
	return nil
}

// Stop dừng timer khi rời màn hình; mutation đang bay không bị cancel
func (l *Loader) Stop() {
	if l.sched != nil {
		if err := l.sched.Shutdown(); err != nil {
			log.Printf("[POLL] shutdown: %v", err)
		}
		l.sched = nil
	}
}

func (l *Loader) tick() {
	if l.store.LastActionWithin(l.cfg.Suppress) {
		return
	}
	if err := l.Refresh(context.Background()); err != nil {
		// fetch fail chỉ log, giữ nguyên danh sách đang hiển thị
		log.Printf("[POLL] refresh failed: %v", err)
	}
}

// Refresh fetch + merge ngay lập tức, dùng khi màn hình được focus lại
func (l *Loader) Refresh(ctx context.Context) error {
	var (
		orders []model.Order
		err    error
	)
	if l.cfg.Admin {
		orders, err = l.api.FetchAdminOrders(ctx)
	} else {
		orders, err = l.api.FetchOrders(ctx, true)
	}
	if err != nil {
		return err
	}

	merged := l.store.Merge(orders)
	if l.cfg.OnUpdate != nil {
		l.cfg.OnUpdate(merged)
	}
	return nil
}
