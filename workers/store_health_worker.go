// workers/store_health_worker.go
package workers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Pinger is anything that can check the database connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthWorker pings the document store on a schedule and remembers the
// last outcome. It only observes: requests keep using the shared client either way.
type StoreHealthWorker struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration

	mu        sync.RWMutex
	healthy   bool
	lastErr   error
	checkedAt time.Time

	sched gocron.Scheduler
}

func NewStoreHealthWorker(db Pinger, interval, timeout time.Duration) *StoreHealthWorker {
	return &StoreHealthWorker{
		db:       db,
		interval: interval,
		timeout:  timeout,
		healthy:  true, // main only starts us after a successful connect
	}
}

// Start schedules the ping job. Call Stop on shutdown.
func (w *StoreHealthWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.check),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule store ping: %w", err)
	}

	w.sched = sched
	sched.Start()
	log.Printf("🔁 [HEALTH] Pinging store every %s", w.interval)
	return nil
}

func (w *StoreHealthWorker) Stop() error {
	if w.sched == nil {
		return nil
	}
	log.Println("⏹️ [HEALTH] Store health worker stopped")
	return w.sched.Shutdown()
}

// Status reports the last ping outcome.
func (w *StoreHealthWorker) Status() (healthy bool, lastErr error, checkedAt time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.healthy, w.lastErr, w.checkedAt
}

func (w *StoreHealthWorker) check() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.db.Ping(ctx)

	w.mu.Lock()
	wasHealthy := w.healthy
	w.healthy = err == nil
	w.lastErr = err
	w.checkedAt = time.Now()
	w.mu.Unlock()

	switch {
	case err != nil:
		log.Printf("❌ [HEALTH] Store ping failed: %v", err)
	case !wasHealthy:
		log.Println("✅ [HEALTH] Store reachable again")
	}
}
