package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/pkg/logger"
)

// ErrRefresherRunning is returned by Start on a refresher that is already scheduled.
var ErrRefresherRunning = errors.New("refresher already running")

// Loader reads a fresh copy of the dataset.
type Loader func(ctx context.Context) (*model.Dataset, error)

// Refresher re-runs the pipeline on a cron schedule. A failed refresh keeps
// the current run.
type Refresher struct {
	svc      *Service
	load     Loader
	schedule string
	logger   logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	stopped chan struct{}
}

// NewRefresher creates a refresher for svc. schedule uses the standard cron
// syntax or a descriptor such as "@every 1h".
func NewRefresher(svc *Service, load Loader, schedule string, l logger.Logger) *Refresher {
	if l == nil {
		l = logger.Nop()
	}
	return &Refresher{
		svc:      svc,
		load:     load,
		schedule: schedule,
		logger:   l,
	}
}

// Start schedules refreshes until ctx is done or Stop is called. Every Start
// gets a fresh scheduler, so a restarted refresher holds a single job.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return ErrRefresherRunning
	}
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		if err := r.Refresh(ctx); err != nil {
			r.logger.Error(ctx, "scheduled refresh failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", r.schedule, err)
	}
	c.Start()
	r.cron = c
	r.stopped = make(chan struct{})
	go r.watch(ctx, c, r.stopped)

	r.logger.Info(ctx, "dataset refresh scheduled", logger.String("schedule", r.schedule))
	return nil
}

// watch stops c once ctx is done, unless Stop got there first.
func (r *Refresher) watch(ctx context.Context, c *cron.Cron, stopped <-chan struct{}) {
	select {
	case <-ctx.Done():
		r.halt(c)
	case <-stopped:
	}
}

// Stop halts the schedule and waits for a refresh in flight.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.mu.Unlock()
	if c != nil {
		r.halt(c)
	}
}

// Running reports whether a schedule is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cron != nil
}

func (r *Refresher) halt(c *cron.Cron) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != c {
		return
	}
	close(r.stopped)
	<-c.Stop().Done()
	r.cron = nil
	r.stopped = nil
}

// Refresh loads the dataset and runs the pipeline once.
func (r *Refresher) Refresh(ctx context.Context) error {
	ds, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	run, err := r.svc.Run(ctx, ds)
	if err != nil {
		return err
	}
	r.logger.Info(ctx, "dataset refreshed", logger.String("run", run.ID))
	return nil
}
