package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/port"
	"github.com/swvikum/cake-bucket-sync/internal/metrics"
)

// runTimeout bounds one scheduled sync run; there is no cancellation inside
// the event loop, so this is the only stop once a run has started.
const runTimeout = 10 * time.Minute

// Scheduler runs the calendar sync on a cron expression. Overlapping runs
// are possible when a run outlives the interval; that only risks a redundant
// token refresh, never duplicate orders.
type Scheduler struct {
	cron        *cron.Cron
	syncService port.SyncService
	daysBack    int
	daysAhead   int
}

func New(spec string, syncService port.SyncService, daysBack, daysAhead int) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(),
		syncService: syncService,
		daysBack:    daysBack,
		daysAhead:   daysAhead,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Calendar sync scheduler started")
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Calendar sync scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := s.syncService.Run(ctx, s.daysBack, s.daysAhead)
	metrics.RecordSyncRun("cron", err == nil)
	if err != nil {
		log.WithError(err).Error("Scheduled calendar sync failed")
		return
	}

	metrics.ObserveReport(report)
}
