package scheduler

import (
	"fmt"
	"log"

	"CoinCompare/internal/compare"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically re-runs the fetch cycle for the current pair so
// the trailing price window stays current. Refresh cycles obey the same
// staleness rule as user-triggered ones.
type Scheduler struct {
	Cron  *cron.Cron
	Store *compare.Store
}

// NewScheduler creates a Scheduler bound to the comparison store.
func NewScheduler(store *compare.Store) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Store: store,
	}
}

// Register adds the refresh task under the given cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}

func (s *Scheduler) refresh() {
	log.Println("[INFO] running scheduled comparison refresh")
	s.Store.Refresh()
}
