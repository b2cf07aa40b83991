package cronjobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSweepSchedule is how often in-process stores drop expired state.
const DefaultSweepSchedule = "@every 5m"

// Sweeper drops expired entries and returns how many it removed.
type Sweeper interface {
	Sweep() int
}

// Scheduler runs periodic maintenance for stores that have no server-side TTL.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddSweep registers a named sweeper on schedule.
func (s *Scheduler) AddSweep(schedule, name string, sweeper Sweeper) error {
	if _, err := s.cron.AddFunc(schedule, SweepJob(name, sweeper)); err != nil {
		return fmt.Errorf("failed to schedule %s sweep: %w", name, err)
	}
	return nil
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// SweepJob wraps sweeper in a job that logs what it removed.
func SweepJob(name string, sweeper Sweeper) func() {
	return func() {
		start := time.Now()
		removed := sweeper.Sweep()
		if removed == 0 {
			return
		}
		log.Debug().
			Str("store", name).
			Int("removed", removed).
			Dur("duration", time.Since(start)).
			Msg("expired entries swept")
	}
}
