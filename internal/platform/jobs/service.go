package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const JobSessionSweep = "session_sweep"

// Sweeper removes expired state and reports how many entries it dropped.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type Service struct {
	sweeper  Sweeper
	interval time.Duration
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(sweeper Sweeper, interval time.Duration) *Service {
	return &Service{
		sweeper:  sweeper,
		interval: interval,
		queue:    make(chan job, 16),
	}
}

// Start runs the worker and, when an interval is set, the sweep schedule.
// Both stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.sweeper != nil && s.interval > 0 {
		go s.scheduleSweeps(ctx, s.interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		log.Warn().Str("jobType", jobType).Msg("job queue full")
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// SweepNow runs one sweep synchronously.
func (s *Service) SweepNow(ctx context.Context) (int64, error) {
	out, err := s.RunNow(ctx, JobSessionSweep, s.sweep)
	removed, _ := out.(int64)
	return removed, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				log.Warn().Err(err).Str("jobType", j.Type).Msg("job run failed")
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	start := time.Now()
	details, err := j.Run(ctx)
	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.Str("jobType", j.Type).
		Interface("details", details).
		Dur("took", time.Since(start)).
		Msg("job finished")
	return details, err
}

func (s *Service) sweep(ctx context.Context) (any, error) {
	return s.sweeper.Sweep(ctx)
}

func (s *Service) scheduleSweeps(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobSessionSweep, s.sweep)
		}
	}
}
