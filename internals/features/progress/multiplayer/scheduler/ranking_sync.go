package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 10m"

// Rebuilder ditulis ulang tiap tick; biasanya MultiplayerService.RebuildAll.
type Rebuilder interface {
	RebuildAll(ctx context.Context) (int, error)
}

// StartRankingSync menjalankan satu rebuild langsung (cache bisa kosong setelah restart
// atau flush), lalu menjadwalkan rebuild berikutnya. Caller wajib Stop().
func StartRankingSync(schedule string, r Rebuilder) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() { runOnce(r) })
	if err != nil {
		return nil, err
	}
	runOnce(r)
	log.Printf("[RANKING-SYNC] started schedule=%q", schedule)
	c.Start()
	return c, nil
}

func runOnce(r Rebuilder) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	started := time.Now()
	n, err := r.RebuildAll(ctx)
	if err != nil {
		log.Printf("[RANKING-SYNC] error: %v", err)
		return
	}
	log.Printf("[RANKING-SYNC] rebuilt %d course(s) in %s", n, time.Since(started).Round(time.Millisecond))
}
